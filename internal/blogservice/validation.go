package blogservice

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sushihentaime/blogfiles/internal/common"
)

var (
	required = validation.Required.Error("must be provided")
	notEmpty = validation.NilOrNotEmpty.Error("must not be empty")
)

func (rt ReadTime) Validate() error {
	return validation.ValidateStruct(&rt,
		validation.Field(&rt.Value, validation.Required.Error("must be greater than zero"), validation.Min(1).Error("must be greater than zero")),
		validation.Field(&rt.Unit, required, validation.Length(1, 20)),
	)
}

func validateCreateBlogPost(req *CreateBlogPostRequest) error {
	v := common.NewValidator()
	err := v.Merge(validation.ValidateStruct(req,
		validation.Field(&req.Category, required, validation.Length(1, 100)),
		validation.Field(&req.Title, required, validation.Length(1, 200)),
		validation.Field(&req.Cover, is.URL.Error("must be a valid URL")),
		validation.Field(&req.ReadTime),
		validation.Field(&req.Author, required, validation.Length(1, 200)),
		validation.Field(&req.Content, required),
	))
	if err != nil {
		return err
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func validateUpdateBlogPost(req *UpdateBlogPostRequest) error {
	v := common.NewValidator()
	err := v.Merge(validation.ValidateStruct(req,
		validation.Field(&req.Category, notEmpty, validation.Length(1, 100)),
		validation.Field(&req.Title, notEmpty, validation.Length(1, 200)),
		validation.Field(&req.Cover, is.URL.Error("must be a valid URL")),
		validation.Field(&req.ReadTime),
		validation.Field(&req.Author, notEmpty, validation.Length(1, 200)),
		validation.Field(&req.Content, notEmpty),
	))
	if err != nil {
		return err
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func validateCreateComment(req *CreateCommentRequest) error {
	v := common.NewValidator()
	err := v.Merge(validation.ValidateStruct(req,
		validation.Field(&req.Author, validation.Length(0, 100)),
		validation.Field(&req.Text, validation.Length(0, 5000)),
		validation.Field(&req.Rate, validation.Min(1), validation.Max(5)),
	))
	if err != nil {
		return err
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func validateID(id, name string) error {
	v := common.NewValidator()
	v.Check(id != "", name, "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}
