package ed25519auth

var (
	KeyMaterial = keyMaterial
	DeriveNonce = deriveNonce
)
