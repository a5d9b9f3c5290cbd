package kombo

import "net/url"

// Pure URL builders for the provider's hosted pages. No network I/O.
const (
	applicationBaseURL = "https://www.kombo.com.br/curriculo/cadastro-curriculo-gratis"
	jobBoardBaseURL    = "https://www.kombo.com.br/curriculo/buscar-vagas-emprego"
	homeBaseURL        = "https://www.kombo.com.br/curriculo"
)

// ApplicationURL builds the candidate-registration URL for an account,
// optionally scoped to one job code.
func ApplicationURL(cid, jobCode string) string {
	q := url.Values{"cid": {cid}}
	if jobCode != "" {
		q.Set("vaga", jobCode)
	}
	return applicationBaseURL + "?" + q.Encode()
}

// JobBoardURL builds the provider's hosted job-board URL for an account.
func JobBoardURL(cid string) string {
	return jobBoardBaseURL + "?" + url.Values{"cid": {cid}}.Encode()
}

// HomeURL builds the provider's careers home URL for an account.
func HomeURL(cid string) string {
	return homeBaseURL + "?" + url.Values{"cid": {cid}}.Encode()
}
