package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(t *testing.T, secret []byte, id, timestamp string, payload []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id + "." + timestamp + "."))
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v, err := NewVerifier("test-secret")
	require.NoError(t, err)

	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	payload := []byte(`{"type":"user.created"}`)
	sig := signPayload(t, []byte("test-secret"), "msg_1", ts, payload)

	assert.NoError(t, v.Verify("msg_1", ts, sig, payload, now))
}

func TestVerifyAcceptsPrefixedSecret(t *testing.T) {
	raw := []byte("another-secret-value")
	encoded := "whsec_" + base64.StdEncoding.EncodeToString(raw)

	v, err := NewVerifier(encoded)
	require.NoError(t, err)

	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	payload := []byte(`{}`)
	sig := signPayload(t, raw, "msg_2", ts, payload)

	assert.NoError(t, v.Verify("msg_2", ts, sig, payload, now))
}

func TestVerifyAcceptsSecondSignatureCandidate(t *testing.T) {
	v, err := NewVerifier("test-secret")
	require.NoError(t, err)

	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	payload := []byte(`{}`)
	good := signPayload(t, []byte("test-secret"), "msg_5", ts, payload)
	header := "v1,Zm9yZWlnbg== " + good

	assert.NoError(t, v.Verify("msg_5", ts, header, payload, now))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v, err := NewVerifier("test-secret")
	require.NoError(t, err)

	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := signPayload(t, []byte("test-secret"), "msg_3", ts, []byte(`{"a":1}`))

	err = v.Verify("msg_3", ts, sig, []byte(`{"a":2}`), now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsStaleTimestamp(t *testing.T) {
	v, err := NewVerifier("test-secret")
	require.NoError(t, err)

	now := time.Now()
	old := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
	payload := []byte(`{}`)
	sig := signPayload(t, []byte("test-secret"), "msg_4", old, payload)

	err = v.Verify("msg_4", old, sig, payload, now)
	assert.ErrorIs(t, err, ErrStaleTimestamp)
}

func TestVerifyRejectsMissingHeaders(t *testing.T) {
	v, err := NewVerifier("test-secret")
	require.NoError(t, err)

	err = v.Verify("", "", "", []byte(`{}`), time.Now())
	assert.ErrorIs(t, err, ErrMissingHeaders)
}
