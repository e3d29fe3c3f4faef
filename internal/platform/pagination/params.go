package pagination

// defaultPageSize is used when a list request does not name a limit.
const defaultPageSize = 20

// Params embeds into Huma input structs for cursor-paginated endpoints.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from previous response"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                          default:"20" minimum:"1" maximum:"100"`
}

// DefaultLimit returns the requested limit, falling back to the default
// page size when the client sent none.
func (p Params) DefaultLimit() int {
	if p.Limit <= 0 {
		return defaultPageSize
	}
	return p.Limit
}
