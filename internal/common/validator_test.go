package common

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

type testInner struct {
	Unit string
}

func (i testInner) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Unit, validation.Required.Error("must be provided")),
	)
}

type testOuter struct {
	Title string
	Inner testInner
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator()
	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "second message is ignored")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
}

func TestValidatorMerge(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantErrs map[string]string
		wantRet  bool
	}{
		{
			name:     "nil error",
			err:      nil,
			wantErrs: map[string]string{},
		},
		{
			name: "field errors",
			err: func() error {
				o := testOuter{Inner: testInner{Unit: "min"}}
				return validation.ValidateStruct(&o,
					validation.Field(&o.Title, validation.Required.Error("must be provided")),
					validation.Field(&o.Inner),
				)
			}(),
			wantErrs: map[string]string{"Title": "must be provided"},
		},
		{
			name: "nested errors",
			err: func() error {
				o := testOuter{Title: "ok"}
				return validation.ValidateStruct(&o,
					validation.Field(&o.Title, validation.Required),
					validation.Field(&o.Inner),
				)
			}(),
			wantErrs: map[string]string{"Inner.Unit": "must be provided"},
		},
		{
			name:     "foreign error",
			err:      errors.New("boom"),
			wantErrs: map[string]string{},
			wantRet:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			ret := v.Merge(tc.err)
			assert.Equal(t, tc.wantRet, ret != nil)
			assert.Equal(t, tc.wantErrs, v.Errors)
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError{Resource: "blog post", ID: "zzz"}

	assert.True(t, errors.Is(err, ErrRecordNotFound))
	assert.Contains(t, err.Error(), "zzz")

	var nf NotFoundError
	assert.True(t, errors.As(error(err), &nf))
	assert.Equal(t, "zzz", nf.ID)
}
