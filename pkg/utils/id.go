package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateDeviceID gera o identificador de dispositivo enviado ao Jellyfin
// no cabeçalho de identificação do cliente. Gerado uma vez por processo.
func GenerateDeviceID() string {
	return "srv-" + gonanoid.MustGenerate(characters, 10)
}
