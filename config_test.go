package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := &Config{port: 8080, defaultLanguage: "de"}
	assert.NoError(t, valid.validate())

	badPort := &Config{port: 0, defaultLanguage: "de"}
	assert.Error(t, badPort.validate())

	badLang := &Config{port: 8080, defaultLanguage: "fr"}
	assert.Error(t, badLang.validate())

	halfTLS := &Config{port: 8080, defaultLanguage: "en", tlsCert: "cert.pem"}
	assert.Error(t, halfTLS.validate())
}

func TestConfigScheme(t *testing.T) {
	plain := &Config{}
	assert.Equal(t, "http", plain.scheme())

	tls := &Config{tlsCert: "cert.pem", tlsKey: "key.pem"}
	assert.Equal(t, "https", tls.scheme())
}
