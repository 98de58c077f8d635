package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/payment"
)

const testSecret = "whsec_test_secret"

func TestVerifySignature_FirmaValida(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := payment.SignPayload(payload, testSecret, time.Now())

	err := payment.VerifySignature(payload, header, testSecret, payment.DefaultTolerance)
	assert.NoError(t, err)
}

func TestVerifySignature_PayloadAlterado(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := payment.SignPayload(payload, testSecret, time.Now())

	err := payment.VerifySignature([]byte(`{"type":"otro"}`), header, testSecret, payment.DefaultTolerance)
	assert.Error(t, err, "un payload distinto al firmado debe rechazarse")
}

func TestVerifySignature_SecretIncorrecto(t *testing.T) {
	payload := []byte(`{}`)
	header := payment.SignPayload(payload, "whsec_otro", time.Now())

	err := payment.VerifySignature(payload, header, testSecret, payment.DefaultTolerance)
	assert.Error(t, err)
}

func TestVerifySignature_TimestampViejo(t *testing.T) {
	payload := []byte(`{}`)
	header := payment.SignPayload(payload, testSecret, time.Now().Add(-10*time.Minute))

	err := payment.VerifySignature(payload, header, testSecret, payment.DefaultTolerance)
	assert.Error(t, err, "un webhook fuera de la ventana de tolerancia es un replay")
}

func TestVerifySignature_CabeceraAusenteOMalformada(t *testing.T) {
	payload := []byte(`{}`)

	require.Error(t, payment.VerifySignature(payload, "", testSecret, payment.DefaultTolerance))
	require.Error(t, payment.VerifySignature(payload, "garbage", testSecret, payment.DefaultTolerance))
	require.Error(t, payment.VerifySignature(payload, "t=abc,v1=00", testSecret, payment.DefaultTolerance))
}
