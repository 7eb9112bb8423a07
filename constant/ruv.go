package constant

// RÚV catalog endpoints and the persisted GraphQL queries the web player uses.
const (
	RUVOrigin  = "https://www.ruv.is"
	RUVReferer = "https://www.ruv.is/sjonvarp"
	RUVGraphQL = "https://www.ruv.is/gql/"

	EpisodesOperation = "getEpisode"
	EpisodesQueryHash = "f3f957a3a577be001eccf93a76cf2ae1b6d10c95e67305c56e4273279115bb93"

	StreamOperation = "getProgramType"
	StreamQueryHash = "9d18a07f82fcd469ad52c0656f47fb8e711dc2436983b53754e0c09bad61ca29"
)

// FirstrunLayout is the timestamp layout of an episode's first broadcast.
const FirstrunLayout = "2006-01-02 15:04:05"
