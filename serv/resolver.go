package serv

import (
	"encoding/json"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/query"
)

// These wire types are the JSON shape a GraphQL/REST layer in front of
// this service decodes request arguments into before calling query.Engine.
// internal/value.Value is an opaque tagged union with no exported fields
// by design; this file is the one place that translates plain JSON
// scalars into it, keeping that translation out of the engine itself.

type pageArgsWire struct {
	First  *int    `json:"first"`
	After  *string `json:"after"`
	Last   *int    `json:"last"`
	Before *string `json:"before"`
}

func (w pageArgsWire) toPageArgs() query.PageArgs {
	return query.PageArgs{First: w.First, After: w.After, Last: w.Last, Before: w.Before}
}

// scalarWire is a JSON scalar tagged the way value.Value is, so a request
// body can say {"kind":"text","text":"app.bsky.feed.post"} or
// {"kind":"integer","int":5} or {"kind":"bool","bool":true}.
type scalarWire struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Int  int64  `json:"int,omitempty"`
	Bool bool   `json:"bool,omitempty"`
}

func (s scalarWire) toValue() value.Value {
	switch s.Kind {
	case "integer":
		return value.Integer(s.Int)
	case "bool":
		return value.Bool(s.Bool)
	case "null":
		return value.Null()
	default:
		return value.Text(s.Text)
	}
}

type conditionWire struct {
	Eq        *scalarWire  `json:"eq"`
	In        []scalarWire `json:"in"`
	Contains  *string      `json:"contains"`
	Gt        *scalarWire  `json:"gt"`
	Gte       *scalarWire  `json:"gte"`
	Lt        *scalarWire  `json:"lt"`
	Lte       *scalarWire  `json:"lte"`
	IsNull    *bool        `json:"isNull"`
	IsNumeric bool         `json:"isNumeric"`
}

func (c conditionWire) toCondition() query.Condition {
	out := query.Condition{Contains: c.Contains, IsNull: c.IsNull, IsNumeric: c.IsNumeric}
	if c.Eq != nil {
		v := c.Eq.toValue()
		out.Eq = &v
	}
	if c.Gt != nil {
		v := c.Gt.toValue()
		out.Gt = &v
	}
	if c.Gte != nil {
		v := c.Gte.toValue()
		out.Gte = &v
	}
	if c.Lt != nil {
		v := c.Lt.toValue()
		out.Lt = &v
	}
	if c.Lte != nil {
		v := c.Lte.toValue()
		out.Lte = &v
	}
	if c.In != nil {
		out.In = make([]value.Value, len(c.In))
		for i, s := range c.In {
			out.In[i] = s.toValue()
		}
	}
	return out
}

// clauseWire mirrors query.Clause with JSON-decodable leaves.
type clauseWire struct {
	Fields map[string]conditionWire `json:"fields"`
	And    []clauseWire             `json:"and"`
	Or     []clauseWire             `json:"or"`
}

func (c clauseWire) toClause() query.Clause {
	out := query.Clause{}
	if len(c.Fields) > 0 {
		out.Fields = make(map[string]query.Condition, len(c.Fields))
		for name, cond := range c.Fields {
			out.Fields[name] = cond.toCondition()
		}
	}
	for _, child := range c.And {
		out.And = append(out.And, child.toClause())
	}
	for _, child := range c.Or {
		out.Or = append(out.Or, child.toClause())
	}
	return out
}

func (c *clauseWire) toClausePtr() *query.Clause {
	if c == nil {
		return nil
	}
	cl := c.toClause()
	return &cl
}

type sortFieldWire struct {
	Name      string `json:"name"`
	Direction string `json:"direction"` // "asc" | "desc"
}

func toSortSpec(fields []sortFieldWire) query.SortSpec {
	if len(fields) == 0 {
		return nil
	}
	out := make(query.SortSpec, len(fields))
	for i, f := range fields {
		dir := query.SortField{Name: f.Name}
		if f.Direction == "desc" {
			dir.Direction = 1 // order.Desc
		}
		out[i] = dir
	}
	return out
}

type listRequestWire struct {
	Collection     string          `json:"collection"`
	Where          *clauseWire     `json:"where"`
	Sort           []sortFieldWire `json:"sort"`
	Page           pageArgsWire    `json:"page"`
	WithTotalCount bool            `json:"withTotalCount"`
}

func (s *Server) listHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req listRequestWire
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := s.engine.List(r.Context(), query.ListRequest{
			Collection:     req.Collection,
			Where:          req.Where.toClausePtr(),
			Sort:           toSortSpec(req.Sort),
			Page:           req.Page.toPageArgs(),
			WithTotalCount: req.WithTotalCount,
			MaxLimit:       s.conf.Page.MaxLimit,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, res)
	})
}

type notificationsRequestWire struct {
	DID         string       `json:"did"`
	Collections []string     `json:"collections"`
	Page        pageArgsWire `json:"page"`
}

func (s *Server) notificationsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req notificationsRequestWire
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := s.engine.Notifications(r.Context(), query.NotificationsRequest{
			DID:         req.DID,
			Collections: req.Collections,
			Page:        req.Page.toPageArgs(),
			MaxLimit:    s.conf.Page.MaxLimit,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, res)
	})
}

type groupByFieldWire struct {
	Kind     string `json:"kind"` // "simple" | "dateTrunc"
	Field    string `json:"field"`
	Interval string `json:"interval"`
}

func dialectInterval(s string) dialect.Interval {
	switch s {
	case "hour":
		return dialect.Hour
	case "week":
		return dialect.Week
	case "month":
		return dialect.Month
	default:
		return dialect.Day
	}
}

func toGroupBy(fields []groupByFieldWire) []query.GroupByField {
	out := make([]query.GroupByField, len(fields))
	for i, f := range fields {
		g := query.GroupByField{Field: f.Field}
		if f.Kind == "dateTrunc" {
			g.Kind = query.GroupByDateTrunc
			g.Interval = dialectInterval(f.Interval)
		}
		out[i] = g
	}
	return out
}

type aggregateRequestWire struct {
	Collection string             `json:"collection"`
	GroupBy    []groupByFieldWire `json:"groupBy"`
	Where      *clauseWire        `json:"where"`
	Order      string             `json:"order"`
	Limit      int                `json:"limit"`
}

func (s *Server) aggregateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req aggregateRequestWire
		if !decodeJSON(w, r, &req) {
			return
		}
		ord := query.CountDesc
		if req.Order == "asc" {
			ord = query.CountAsc
		}
		res, err := s.engine.Aggregate(r.Context(), query.AggregateRequest{
			Collection: req.Collection,
			GroupBy:    toGroupBy(req.GroupBy),
			Where:      req.Where.toClausePtr(),
			Order:      ord,
			Limit:      req.Limit,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, res)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Body == nil {
		http.Error(w, "request body required", http.StatusBadRequest)
		return false
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set(headers.ContentType, "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors to HTTP status. An invalid cursor never
// reaches here since the engine downgrades it to "ignore the cursor"
// rather than erroring.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Errorw("query failed", "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
