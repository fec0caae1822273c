package usecase

import (
	"regexp"
	"strings"
	"time"

	log "github.com/hashicorp/go-hclog"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
)

// MaxTeamUpSelection caps how many solo participants one team-up may merge.
// Team registrations carry at most MaxTeamUpSelection-1 members besides the
// leader, keeping the two paths at the same team size.
const MaxTeamUpSelection = 4

// emailRe accepts the basic local@domain.tld shape, nothing stricter.
var emailRe = regexp.MustCompile(`(?i)^.+@.+\..+$`)

type Service struct {
	store  *io.MemoryStore
	clock  *io.Clock
	logger log.Logger
}

func NewService(store *io.MemoryStore, clock *io.Clock, parentLogger log.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		logger: parentLogger.Named("usecase"),
	}
}

func sanitizeString(value string) string {
	return strings.TrimSpace(value)
}

func validEmail(value string) bool {
	return emailRe.MatchString(value)
}

// optional renders empty-after-trim strings as absent in read projections.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func isoTime(ts model.UnixTime) string {
	return time.Unix(0, ts).UTC().Format(time.RFC3339Nano)
}
