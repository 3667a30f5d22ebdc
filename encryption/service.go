package encryption

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

const fingerprintBytes = 8

type CryptoService struct{}

func NewCryptoService() *CryptoService {
	return &CryptoService{}
}

// Keccak256 computes Keccak-256 hash
func (cs *CryptoService) Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// KeyFingerprint identifies a key by a short hash of its public half.
func (cs *CryptoService) KeyFingerprint(key *KeyParameters) string {
	pub := key.Public()
	sum := cs.Keccak256(pub.N.Bytes(), []byte{':'}, pub.E.Bytes())
	return hex.EncodeToString(sum[:fingerprintBytes])
}

// EncodeBig renders v as 0x-prefixed hex.
func (cs *CryptoService) EncodeBig(v *big.Int) string {
	if v == nil {
		return ""
	}
	return hexutil.EncodeBig(v)
}

// EncodeCiphertext renders every unit of c as hex.
func (cs *CryptoService) EncodeCiphertext(c Ciphertext) []string {
	out := make([]string, len(c))
	for i, v := range c {
		out[i] = cs.EncodeBig(v)
	}
	return out
}
