package models

import (
	"math/big"
	"time"
)

type EncryptRequest struct {
	Text string `json:"text"`
}

type DecryptRequest struct {
	Ciphertext []*big.Int `json:"ciphertext"`
}

type EncryptResponse struct {
	Ciphertext    []*big.Int `json:"ciphertext"`
	CiphertextHex []string   `json:"ciphertext_hex"`
}

type DecryptResponse struct {
	Text string `json:"text"`
}

// SessionSnapshot is the presentation view of one demo session.
type SessionSnapshot struct {
	ID         string     `json:"id"`
	Mode       string     `json:"mode"`
	Plaintext  string     `json:"plaintext,omitempty"`
	Ciphertext []*big.Int `json:"ciphertext,omitempty"`
	Recovered  string     `json:"recovered,omitempty"`
	CanEncrypt bool       `json:"can_encrypt"`
	CanDecrypt bool       `json:"can_decrypt"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// KeyInfo describes the active key. D is included because the demo
// displays the private key next to the public one.
type KeyInfo struct {
	P           string `json:"p"`
	Q           string `json:"q"`
	N           string `json:"n"`
	Phi         string `json:"phi"`
	E           string `json:"e"`
	D           string `json:"d"`
	NHex        string `json:"n_hex"`
	EHex        string `json:"e_hex"`
	DHex        string `json:"d_hex"`
	Bits        int    `json:"bits"`
	Fingerprint string `json:"fingerprint"`
}

type EntropyRequest struct {
	Text string `json:"text"`
}

type EntropyResponse struct {
	Entropy    float64 `json:"entropy"`
	Normalized float64 `json:"normalized"`
	Label      string  `json:"label"`
}

type GiniRequest struct {
	Labels []int `json:"labels"`
}

type GiniResponse struct {
	Gini   float64 `json:"gini"`
	Purity float64 `json:"purity"`
	Label  string  `json:"label"`
}

type BayesRequest struct {
	Prior         *float64 `json:"prior"`
	Likelihood    *float64 `json:"likelihood"`
	FalsePositive *float64 `json:"false_positive"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
