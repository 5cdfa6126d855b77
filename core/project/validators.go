package project

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classportal/backend/core"
)

var (
	urlRequiredTag  = "url_required"
	urlRequiredText = "please enter a URL"

	fileRequiredTag  = "file_required"
	fileRequiredText = "please choose a PDF file"
)

// InitValidators registers the upload validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(uploadStructValidation, NewUpload{})
	core.RegisterCustomTranslation(validate, translator, urlRequiredTag, urlRequiredText)
	core.RegisterCustomTranslation(validate, translator, fileRequiredTag, fileRequiredText)
}

// uploadStructValidation requires the field matching the declared upload type.
func uploadStructValidation(sl validator.StructLevel) {
	nu, ok := sl.Current().Interface().(NewUpload)
	if !ok {
		return
	}
	switch nu.Type {
	case TypeURL:
		if core.IsBlank(nu.URL) {
			sl.ReportError(nu.URL, "url", "URL", urlRequiredTag, "")
		}
	case TypePDF:
		if core.IsBlank(nu.File) {
			sl.ReportError(nu.File, "file", "File", fileRequiredTag, "")
		}
	}
}
