package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance ventana máxima aceptada entre el timestamp firmado y
// ahora, contra replay de webhooks viejos.
const DefaultTolerance = 5 * time.Minute

// VerifySignature valida la cabecera de firma del webhook contra el
// cuerpo crudo. El formato de la cabecera es "t=<unix>,v1=<hex>" y la
// firma es HMAC-SHA256 de "<unix>.<payload>" con el secreto del
// endpoint.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if header == "" {
		return fmt.Errorf("webhook: cabecera de firma ausente")
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("webhook: timestamp ilegible en la firma")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, v)
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("webhook: cabecera de firma incompleta")
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return fmt.Errorf("webhook: timestamp fuera de la ventana de tolerancia")
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("webhook: firma inválida")
}

// SignPayload produce una cabecera de firma válida para el payload.
// Lo usan los tests y cualquier herramienta de reenvío local.
func SignPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
