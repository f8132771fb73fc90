// Package version carries the build identity of the xano-mcp binary.
package version

import "fmt"

const unset = "dev"

// Stamped at release time, e.g.
//
//	go build -ldflags "-X github.com/xano-labs/xano-mcp-server/internal/version.Version=v1.2.0"
var (
	// Version is the release tag reported in the MCP handshake and the User-Agent.
	Version = unset
	// Commit is the source revision the binary was built from.
	Commit = unset
	// BuildDate is when the binary was built, in whatever form the release job stamps.
	BuildDate = unset
)

// Info is the build identity as reported by `xano-mcp version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Get reads the stamped values; blank stamps read as "dev".
func Get() Info {
	return Info{
		Version:   orUnset(Version),
		Commit:    orUnset(Commit),
		BuildDate: orUnset(BuildDate),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("xano-mcp %s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}

// UserAgent identifies the server to the Xano API.
func UserAgent() string {
	return "xano-mcp/" + orUnset(Version)
}

func orUnset(v string) string {
	if v == "" {
		return unset
	}
	return v
}
