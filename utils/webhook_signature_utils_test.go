package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"ref":"refs/heads/main"}`)

	if !VerifyWebhookSignature(secret, body, signBody(secret, body)) {
		t.Error("valid signature rejected")
	}

	if VerifyWebhookSignature(secret, body, signBody("other-secret", body)) {
		t.Error("signature from wrong secret accepted")
	}

	if VerifyWebhookSignature(secret, []byte("tampered"), signBody(secret, body)) {
		t.Error("signature over different body accepted")
	}

	if VerifyWebhookSignature(secret, body, "") {
		t.Error("empty header accepted")
	}

	if VerifyWebhookSignature(secret, body, "sha1=abcdef") {
		t.Error("non-sha256 header accepted")
	}

	if VerifyWebhookSignature("", body, signBody("", body)) {
		t.Error("verification must fail when no secret is configured")
	}
}
