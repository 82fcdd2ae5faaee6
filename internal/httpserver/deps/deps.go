package deps

import (
	"time"

	"github.com/pudu/heartgate/internal/content"
	"github.com/pudu/heartgate/internal/logger"
	"github.com/pudu/heartgate/internal/storage"
)

// Deps carries everything route registrars need. Built once in app.New.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Content *content.Service // content index service
	Backend storage.Backend  // raw blob access (blob serving, readiness probe)

	GridSize  int           // puzzle grid dimension N
	UnlockTTL time.Duration // unlock cookie lifetime

	AdminCIDRS   []string // IPs allowed to mutate content; empty = no filtering
	AllowedHosts []string // optional Host header allowlist
	TrustProxy   bool     // resolve client IP from proxy headers

	UploadBurst        int // upload rate limit burst per IP
	UploadRefillPerMin int // upload rate limit refill per IP per minute
}
