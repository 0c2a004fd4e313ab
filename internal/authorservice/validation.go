package authorservice

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sushihentaime/blogfiles/internal/common"
)

var (
	required = validation.Required.Error("must be provided")
	notEmpty = validation.NilOrNotEmpty.Error("must not be empty")
	email    = is.EmailFormat.Error("must be a valid email address")
	date     = validation.Date("2006-01-02").Error("must be a date in YYYY-MM-DD format")
	validURL = is.URL.Error("must be a valid URL")
)

func validateCreateAuthor(req *CreateAuthorRequest) error {
	v := common.NewValidator()
	err := v.Merge(validation.ValidateStruct(req,
		validation.Field(&req.Name, required, validation.Length(1, 100)),
		validation.Field(&req.Surname, required, validation.Length(1, 100)),
		validation.Field(&req.Email, required, email),
		validation.Field(&req.DateOfBirth, date),
		validation.Field(&req.Avatar, validURL),
	))
	if err != nil {
		return err
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func validateUpdateAuthor(req *UpdateAuthorRequest) error {
	v := common.NewValidator()
	err := v.Merge(validation.ValidateStruct(req,
		validation.Field(&req.Name, notEmpty, validation.Length(1, 100)),
		validation.Field(&req.Surname, notEmpty, validation.Length(1, 100)),
		validation.Field(&req.Email, notEmpty, email),
		validation.Field(&req.DateOfBirth, date),
		validation.Field(&req.Avatar, validURL),
	))
	if err != nil {
		return err
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func validateID(id string) error {
	v := common.NewValidator()
	v.Check(id != "", "id", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}
