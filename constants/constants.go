package constants

// Names of the fixed publish subtrees every instance gets.
const (
	SubtreeSecret  = "secret"
	SubtreeServer  = "server"
	SubtreeShared  = "shared"
	SubtreeClients = "clients"
)

// Canonical artifact file names inside an instance working directory.
const (
	CACertFile     = "ca.crt"
	CAKeyFile      = "ca.key"
	ServerCertFile = "server.crt"
	ServerKeyFile  = "server.key"
	DHParamsFile   = "dh.pem"
	TLSAuthKeyFile = "ta.key"
	CRLFile        = "crl.pem"
)

// File names a client bundle is published under, regardless of the
// common name the toolkit used for the source files.
const (
	ClientCertFile = "client.crt"
	ClientKeyFile  = "client.key"
)

// Directory names under the installation root.
const (
	EasyRSADirName = "easy-rsa"
	VarsDirName    = "vars"
	KeysDirName    = "keys"
	PublishDirName = "deploy"
)

const (
	// ServerCertName is the fixed common name the server certificate is issued for.
	ServerCertName = "server"

	// CRLValidityDays is the validity window of a freshly signed CRL.
	CRLValidityDays = 3650
)
