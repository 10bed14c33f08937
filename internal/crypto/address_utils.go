package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/ripemd160"
)

// --- Custom Errors for Address Utilities ---
var (
	ErrInvalidAddressLength = errors.New("invalid address length")
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrAddressChecksum      = errors.New("address checksum mismatch")
	ErrInvalidVersionByte   = errors.New("invalid address version byte")
	ErrPublicKeyHash        = errors.New("public key hash failed")
	ErrInvalidAddress       = errors.New("invalid address")
)

// EmPower1AddressPrefix defines the prefix for corechain addresses.
const (
	EmPower1AddressPrefix = "ep1"
	AddressVersionByte    = 0x00
	AddressChecksumLength = 4
	PublicKeyHashLength   = 20
	FullAddressLength     = 1 + PublicKeyHashLength + AddressChecksumLength
)

// --- Address Derivation Functions ---

// HashPublicKey hashes a raw public key byte slice (e.g., 65-byte uncompressed P256)
// to derive a shorter, unique identifier, typically used as the core of an address.
// Standard derivation: RIPEMD160(SHA256(PublicKeyBytes))
func HashPublicKey(pubKeyBytes []byte) ([]byte, error) {
	if len(pubKeyBytes) == 0 {
		return nil, fmt.Errorf("%w: public key bytes cannot be empty for hashing", ErrPublicKeyHash)
	}

	hasher256 := sha256.New()
	hasher256.Write(pubKeyBytes)
	sha256Hash := hasher256.Sum(nil)

	hasher160 := ripemd160.New()
	hasher160.Write(sha256Hash)
	ripemd160Hash := hasher160.Sum(nil)

	if len(ripemd160Hash) != PublicKeyHashLength {
		return nil, fmt.Errorf("%w: derived public key hash has incorrect length: expected %d, got %d", ErrPublicKeyHash, PublicKeyHashLength, len(ripemd160Hash))
	}
	return ripemd160Hash, nil
}

// Checksum generates a 4-byte checksum for address validation: the first 4
// bytes of a double SHA256 hash.
func Checksum(payload []byte) []byte {
	firstSHA := sha256.Sum256(payload)
	secondSHA := sha256.Sum256(firstSHA[:])
	return secondSHA[:AddressChecksumLength]
}

// EncodeAddress encodes a public key hash into a full address string: a
// version byte, the hash, and a checksum, hex-encoded behind a human prefix.
func EncodeAddress(pubKeyHash []byte) (string, error) {
	if len(pubKeyHash) != PublicKeyHashLength {
		return "", fmt.Errorf("%w: public key hash must be %d bytes", ErrInvalidAddressLength, PublicKeyHashLength)
	}

	payload := append([]byte{AddressVersionByte}, pubKeyHash...)
	checksum := Checksum(payload)
	payloadWithChecksum := append(payload, checksum...)

	encoded := hex.EncodeToString(payloadWithChecksum)
	return EmPower1AddressPrefix + "_" + encoded, nil
}

// DecodeAddress decodes an address string back into its public key hash and validates it.
func DecodeAddress(address string) ([]byte, error) {
	if !strings.HasPrefix(address, EmPower1AddressPrefix+"_") {
		return nil, fmt.Errorf("%w: address does not start with '%s_'", ErrInvalidAddressFormat, EmPower1AddressPrefix)
	}
	hexPart := strings.TrimPrefix(address, EmPower1AddressPrefix+"_")

	payloadWithChecksum, err := hex.DecodeString(hexPart)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode hex part of address: %v", ErrInvalidAddressFormat, err)
	}

	if len(payloadWithChecksum) != FullAddressLength {
		return nil, fmt.Errorf("%w: address has incorrect decoded length: expected %d, got %d", ErrInvalidAddressLength, FullAddressLength, len(payloadWithChecksum))
	}

	versionByte := payloadWithChecksum[0]
	pubKeyHash := payloadWithChecksum[1 : 1+PublicKeyHashLength]
	checksum := payloadWithChecksum[1+PublicKeyHashLength:]

	if versionByte != AddressVersionByte {
		return nil, fmt.Errorf("%w: expected version byte 0x%x, got 0x%x", ErrInvalidVersionByte, AddressVersionByte, versionByte)
	}

	expectedChecksum := Checksum(payloadWithChecksum[:FullAddressLength-AddressChecksumLength])
	if !bytes.Equal(checksum, expectedChecksum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrAddressChecksum)
	}

	return pubKeyHash, nil
}

// IsValidAddress checks if a given string is a valid address.
func IsValidAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}

// SortByteSlices sorts a slice of byte slices lexicographically in place.
func SortByteSlices(s [][]byte) {
	sort.Slice(s, func(i, j int) bool {
		return bytes.Compare(s[i], s[j]) < 0
	})
}

// DeriveMultiSigAddress derives a deterministic identifier for a multi-signature
// account from its signature threshold and its sorted set of authorized public keys:
// Hash(M || N || sorted_public_keys...).
func DeriveMultiSigAddress(requiredSignatures uint32, authorizedPublicKeys [][]byte) ([]byte, error) {
	if requiredSignatures == 0 || len(authorizedPublicKeys) == 0 {
		return nil, fmt.Errorf("%w: invalid multi-sig configuration for address derivation", ErrInvalidAddress)
	}
	if requiredSignatures > uint32(len(authorizedPublicKeys)) {
		return nil, fmt.Errorf("%w: M (%d) cannot be greater than N (%d) for multi-sig address derivation", ErrInvalidAddress, requiredSignatures, len(authorizedPublicKeys))
	}

	sorted := make([][]byte, len(authorizedPublicKeys))
	copy(sorted, authorizedPublicKeys)
	SortByteSlices(sorted)

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, requiredSignatures)
	binary.Write(&buf, binary.BigEndian, uint32(len(sorted)))
	for _, pk := range sorted {
		buf.Write(pk)
	}

	multiSigHash := sha256.Sum256(buf.Bytes())
	return multiSigHash[:], nil
}
