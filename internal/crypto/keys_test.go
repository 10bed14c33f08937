package crypto

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestGenerateECDSAKeyPair(t *testing.T) {
	privKey, err := GenerateECDSAKeyPair()
	if err != nil {
		t.Fatalf("GenerateECDSAKeyPair() error = %v", err)
	}
	if privKey == nil {
		t.Fatalf("GenerateECDSAKeyPair() private key is nil")
	}
	if privKey.PublicKey.X == nil || privKey.PublicKey.Y == nil {
		t.Fatalf("GenerateECDSAKeyPair() public key coordinates are nil")
	}
	// Check curve is P256
	if privKey.PublicKey.Curve.Params().Name != "P-256" {
		t.Errorf("Expected P256 curve, got %s", privKey.PublicKey.Curve.Params().Name)
	}
}

func TestPublicKeySerializationDeserialization(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()
	pubKey := &privKey.PublicKey

	serialized, err := SerializePublicKeyToBytes(pubKey)
	if err != nil {
		t.Fatalf("SerializePublicKeyToBytes() error = %v", err)
	}
	if serialized == nil {
		t.Fatalf("SerializePublicKeyToBytes() returned nil")
	}

	deserializedPubKey, err := DeserializePublicKeyFromBytes(serialized)
	if err != nil {
		t.Fatalf("DeserializePublicKeyFromBytes() error = %v", err)
	}

	reserialized, err := SerializePublicKeyToBytes(deserializedPubKey)
	if err != nil {
		t.Fatalf("SerializePublicKeyToBytes() on deserialized key error = %v", err)
	}
	if !bytes.Equal(serialized, reserialized) {
		t.Errorf("Original and deserialized public keys do not match")
	}
	if pubKey.X.Cmp(deserializedPubKey.X) != 0 || pubKey.Y.Cmp(deserializedPubKey.Y) != 0 {
		t.Errorf("Original and deserialized public key coordinates do not match")
	}
}

func TestAddressConversion(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()
	pubKeyBytes, err := SerializePublicKeyToBytes(&privKey.PublicKey)
	if err != nil {
		t.Fatalf("SerializePublicKeyToBytes() error = %v", err)
	}

	address := PublicKeyBytesToAddress(pubKeyBytes)
	if address == "" {
		t.Fatalf("PublicKeyBytesToAddress() returned empty string")
	}
	if len(address) != 130 { // 04 + 32 bytes for X + 32 bytes for Y, hex encoded = 2 + 64 + 64
		t.Errorf("Expected address length 130, got %d", len(address))
	}


	retrievedPubKeyBytes, err := AddressToPublicKeyBytes(address)
	if err != nil {
		t.Fatalf("AddressToPublicKeyBytes() error = %v", err)
	}
	if !bytes.Equal(pubKeyBytes, retrievedPubKeyBytes) {
		t.Errorf("Original public key bytes and bytes from address do not match")
	}
}

func TestPrivateKeyPEMSerialization(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()

	// Test without password
	pemBytes, err := SerializePrivateKeyToPEM(privKey, nil) // Pass nil for no password
	if err != nil {
		t.Fatalf("SerializePrivateKeyToPEM() without password error = %v", err)
	}
	deserializedPrivKey, err := DeserializePrivateKeyFromPEM(pemBytes, nil) // Pass nil for no password
	if err != nil {
		t.Fatalf("DeserializePrivateKeyFromPEM() without password error = %v", err)
	}
	if privKey.D.Cmp(deserializedPrivKey.D) != 0 ||
		privKey.PublicKey.X.Cmp(deserializedPrivKey.PublicKey.X) != 0 ||
		privKey.PublicKey.Y.Cmp(deserializedPrivKey.PublicKey.Y) != 0 {
		t.Errorf("Original and deserialized private keys (no password) do not match")
	}

	// Test with password: password-encrypted PEM is not supported, so a
	// non-empty password is rejected with ErrPEMEncrypted on both sides.
	password := "testpassword"
	pemBytesWithPwd, err := SerializePrivateKeyToPEM(privKey, []byte(password))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("SerializePrivateKeyToPEM() with password error = %v, want ErrPEMEncrypted", err)
	}
	if pemBytesWithPwd != nil {
		t.Errorf("SerializePrivateKeyToPEM() with password returned %d bytes, want nil", len(pemBytesWithPwd))
	}

	// Deserializing an unencrypted PEM with a password is rejected
	deserializedPrivKeyPwd, err := DeserializePrivateKeyFromPEM(pemBytes, []byte(password))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("DeserializePrivateKeyFromPEM() with password error = %v, want ErrPEMEncrypted", err)
	}
	if deserializedPrivKeyPwd != nil {
		t.Errorf("DeserializePrivateKeyFromPEM() with password returned a key, want nil")
	}

	// A wrong password is rejected the same way
	deserializedPrivKeyWrongPwd, err := DeserializePrivateKeyFromPEM(pemBytes, []byte("wrongpassword"))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("DeserializePrivateKeyFromPEM() with wrong password error = %v, want ErrPEMEncrypted", err)
	}
	if deserializedPrivKeyWrongPwd != nil {
		t.Errorf("DeserializePrivateKeyFromPEM() with wrong password returned a key, want nil")
	}

	// Deserializing with a nil password works
	deserializedPrivKeyNilPwd, err := DeserializePrivateKeyFromPEM(pemBytes, nil)
	if err != nil {
		t.Fatalf("DeserializePrivateKeyFromPEM() with nil password (for unencrypted key) error = %v", err)
	}
	if privKey.D.Cmp(deserializedPrivKeyNilPwd.D) != 0 {
		t.Errorf("Deserialized key (with nil password, from unencrypted PEM) does not match original")
	}
}

func TestPublicKeyPEMSerialization(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()
	pubKey := &privKey.PublicKey

	pemBytes, err := SerializePublicKeyToPEM(pubKey)
	if err != nil {
		t.Fatalf("SerializePublicKeyToPEM() error = %v", err)
	}
	deserializedPubKey, err := DeserializePublicKeyFromPEM(pemBytes)
	if err != nil {
		t.Fatalf("DeserializePublicKeyFromPEM() error = %v", err)
	}
	if pubKey.X.Cmp(deserializedPubKey.X) != 0 || pubKey.Y.Cmp(deserializedPubKey.Y) != 0 {
		t.Errorf("Original and deserialized public keys (PEM) do not match")
	}
}

func TestFileOperations(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()
	pubKey := &privKey.PublicKey
	password := "fileopstest"
	privKeyFile := "test_priv.pem"
	pubKeyFile := "test_pub.pem"

	defer os.Remove(privKeyFile)
	defer os.Remove(pubKeyFile)

	// Test Save/Load Private Key (unencrypted, password nil for save)
	err := SavePrivateKeyPEM(privKey, privKeyFile, nil)
	if err != nil {
		t.Fatalf("SavePrivateKeyPEM() without password error = %v", err)
	}
	loadedPrivKey, err := LoadPrivateKeyPEM(privKeyFile, nil)
	if err != nil {
		t.Fatalf("LoadPrivateKeyPEM() without password error = %v", err)
	}
	if privKey.D.Cmp(loadedPrivKey.D) != 0 {
		t.Errorf("Saved and loaded unencrypted private keys (nil password) do not match")
	}
	os.Remove(privKeyFile)

	// Saving with a password fails with ErrPEMEncrypted and writes no file
	err = SavePrivateKeyPEM(privKey, privKeyFile, []byte(password))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("SavePrivateKeyPEM() with password error = %v, want ErrPEMEncrypted", err)
	}
	if _, statErr := os.Stat(privKeyFile); !os.IsNotExist(statErr) {
		t.Errorf("SavePrivateKeyPEM() with password left a file behind (stat error = %v)", statErr)
	}

	// Loading an unencrypted file with a correct or wrong password fails with
	// ErrPEMEncrypted; a nil password loads it
	if err := SavePrivateKeyPEM(privKey, privKeyFile, nil); err != nil {
		t.Fatalf("SavePrivateKeyPEM() without password error = %v", err)
	}
	loadedPrivKeyCorrectPwd, err := LoadPrivateKeyPEM(privKeyFile, []byte(password))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("LoadPrivateKeyPEM() with password error = %v, want ErrPEMEncrypted", err)
	}
	if loadedPrivKeyCorrectPwd != nil {
		t.Errorf("LoadPrivateKeyPEM() with password returned a key, want nil")
	}

	loadedPrivKeyWrongPwd, err := LoadPrivateKeyPEM(privKeyFile, []byte("stillwrong"))
	if !errors.Is(err, ErrPEMEncrypted) {
		t.Fatalf("LoadPrivateKeyPEM() with wrong password error = %v, want ErrPEMEncrypted", err)
	}
	if loadedPrivKeyWrongPwd != nil {
		t.Errorf("LoadPrivateKeyPEM() with wrong password returned a key, want nil")
	}

	loadedPrivKeyNilPwd, err := LoadPrivateKeyPEM(privKeyFile, nil)
	if err != nil {
		t.Fatalf("LoadPrivateKeyPEM() with nil password error = %v", err)
	}
	if privKey.D.Cmp(loadedPrivKeyNilPwd.D) != 0 {
		t.Errorf("Saved (unencrypted) and loaded (nil pwd) private keys do not match")
	}


	// Test Save/Load Public Key
	err = SavePublicKeyPEM(pubKey, pubKeyFile)
	if err != nil {
		t.Fatalf("SavePublicKeyPEM() error = %v", err)
	}
	loadedPubKey, err := LoadPublicKeyPEM(pubKeyFile)
	if err != nil {
		t.Fatalf("LoadPublicKeyPEM() error = %v", err)
	}
	if pubKey.X.Cmp(loadedPubKey.X) != 0 || pubKey.Y.Cmp(loadedPubKey.Y) != 0 {
		t.Errorf("Saved and loaded public keys do not match")
	}
}
