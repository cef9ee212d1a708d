package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSlug gera um identificador público opaco para URLs compartilháveis
func GenerateSlug() (string, error) {
	return gonanoid.Generate(characters, 12)
}
