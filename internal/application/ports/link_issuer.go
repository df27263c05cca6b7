package ports

import (
	"file-exchange-api/internal/domain/file"
)

// LinkIssuer turns a registry id into a signed, expiring download token
// and resolves such a token back to the id.
type LinkIssuer interface {
	Issue(fileID file.ID) (string, error)
	Resolve(token string) (file.ID, error)
}
