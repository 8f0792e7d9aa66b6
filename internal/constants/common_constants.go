package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CacheKeyAccessToken      = "OPENSKY_ACCESS_TOKEN"
	CacheKeyComprehensive    = "COMPREHENSIVE_SNAPSHOT"
	CachePrefixFlightHistory CachePrefix = "FH_"
)

// Upstream defaults. The OpenSky token is valid for 30 minutes; it is
// cached for less so it never expires mid-use.
const (
	DefaultOpenSkyBaseURL = "https://opensky-network.org/api"
	DefaultOAuthTokenURL  = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"

	TokenCacheMinutes   = 25
	DefaultHistoryHours = 48
	DefaultRetentionHrs = 48
	DefaultStatsDays    = 7
)
