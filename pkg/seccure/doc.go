// Package seccure is a pure-Go elliptic-curve engine compatible with the
// seccure family of tools: passphrase-derived keys, compact base-90 public
// keys and signatures, ECDSA and ECIES hybrid encryption.
//
// # Sessions
//
// All operations run on a Session, which binds a curve to the process-wide
// backend. The first session opened in a process initialises the backend and
// its secure-memory pool; the last one closed tears the pool down.
//
//	s, err := seccure.NewSession(nil) // DefaultOptions: p160, SecureRandom
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// Options can also come from the environment:
//
//	opts, err := seccure.OptionsFromEnv(nil) // SECCURE_CURVE, SECCURE_SECURE_RANDOM
//	s, err := seccure.NewSession(&opts)
//
// # Keys
//
// A KeyPair holds a private exponent, a compact public key, or both. The
// private exponent is always derived from a passphrase (or drawn at random by
// Keygen); the passphrase itself is not kept.
//
//	kp, err := s.Keygen([]byte("my private key"))
//	defer kp.Free()
//	fmt.Println(string(kp.PublicKey())) // 8W;>i^H0qi|J&$coR5MFpR*Vn on p160
//
//	peer, err := s.NewKeyPair([]byte("8W;>i^H0qi|J&$coR5MFpR*Vn"), nil)
//
// # Signing and Encryption
//
//	sig, err := s.Sign(msg, kp)              // compact text, SigLenCompact chars
//	ok := s.Verify(msg, sig.Bytes(), peer)
//
//	env, err := s.Encrypt(plaintext, peer)   // R ‖ ciphertext ‖ 10-byte tag
//	pt, err := s.Decrypt(env.Bytes(), kp)
//
// Results are returned as *Data; call Free to wipe them once consumed.
//
// # Errors
//
// Failures are returned as *Error values carrying the operation name. Use
// errors.Is with the exported sentinels (ErrInvalidPoint, ErrAuthentication,
// ErrUninitializedSession, ...) to classify them.
package seccure
