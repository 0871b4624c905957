package app

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renameForm struct {
	Name string `json:"name" binding:"required,max=255"`
}

func testContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValidWithoutTranslator(t *testing.T) {
	c := testContext(t, `{}`)

	valid, errs := BindAndValid(c, &renameForm{})
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Contains(t, errs.Error(), "required")
}

func TestBindAndValidTranslatesErrors(t *testing.T) {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	require.True(t, ok)

	uni := ut.New(en.New(), en.New())
	trans, _ := uni.GetTranslator("en")
	require.NoError(t, en_translations.RegisterDefaultTranslations(validate, trans))

	c := testContext(t, `{}`)
	c.Set("trans", trans)

	valid, errs := BindAndValid(c, &renameForm{})
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Contains(t, errs.Error(), "required field")
}

func TestBindAndValidMalformedBody(t *testing.T) {
	c := testContext(t, `{"name":`)

	valid, errs := BindAndValid(c, &renameForm{})
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Key)
}

func TestBindAndValidPassThrough(t *testing.T) {
	c := testContext(t, `{"name":"report.txt"}`)

	form := &renameForm{}
	valid, errs := BindAndValid(c, form)
	assert.True(t, valid)
	assert.Nil(t, errs)
	assert.Equal(t, "report.txt", form.Name)
}
