package pagination

// MaxPage bounds the page number accepted from clients.
const MaxPage = 1<<31 - 1

// WithDefaults normalizes Params against the configuration.
//
// Rules:
//   - If page <= 0, set to config.DefaultPage
//   - If limit <= 0, set to config.DefaultLimit
//   - If page > MaxPage, cap to MaxPage
//   - If limit > config.MaxLimit, cap to config.MaxLimit
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if config.MaxLimit > 0 && p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
