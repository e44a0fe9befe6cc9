package easyrsa

// Version is populated at build time via ldflags:
//
//	go build -ldflags "-X github.com/coinbase/easyrsa-go/pkg/easyrsa.Version=v1.2.3"
var Version = "v0.0.0-in-progress"

// LibraryVersion returns the version string set at build time.
func LibraryVersion() string {
	return Version
}
