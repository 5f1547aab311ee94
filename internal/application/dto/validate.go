package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate instance partagée ; les tags sont déclarés sur les structs de ce package.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate vérifie les tags de validation d'un DTO à la frontière HTTP.
// Retourne une erreur lisible nommant le premier champ fautif.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		return fmt.Errorf("champ %s invalide (règle %s)", e.Field(), e.Tag())
	}
	return err
}
