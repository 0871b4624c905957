package code

import (
	"fmt"
	"reflect"
)

// lang stores the per-language message texts
type lang struct {
	en    string
	zh_cn string
}

// default language
var lng = "en"

const FALLBACK_LNG = "en"

// SetLang switches the active response language
func SetLang(l string) {
	lng = l
}

// GetMessage returns the message for the active language,
// falling back to English when the language has no text.
func (l lang) GetMessage() string {
	if lng == "" {
		lng = FALLBACK_LNG
	}
	val := reflect.ValueOf(l)
	field := val.FieldByName(lng)
	if field.IsValid() && field.String() != "" {
		return field.String()
	}
	fallbackField := val.FieldByName(FALLBACK_LNG)
	if fallbackField.IsValid() && fallbackField.String() != "" {
		return fallbackField.String()
	}
	return fmt.Sprintf("No message available for language: %s", lng)
}

// GetSupportedLanguages returns every language the lang type carries
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}
