package storage

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	SensorID string
	DeviceID string

	Tenant  string
	Tenants []string

	AlertID    string
	Kinds      []string
	Status     []string
	Severities []string
	RuleID     string

	Active *bool

	Actor        string
	Action       string
	ResourceType string
	ResourceID   string

	Since time.Time
	Until time.Time

	Search string

	Bounds *Box

	IncludeDeleted bool

	sortBy    string
	sortOrder string

	offset *int
	limit  *int
}

type Box struct {
	MinX float64 // west
	MaxX float64 // east
	MinY float64 // south
	MaxY float64 // north
}

func (c Condition) SortBy() string {
	return c.sortBy
}

func (c Condition) SortOrder() string {
	if c.sortOrder == "" {
		return "ASC"
	}
	return c.sortOrder
}

func (c Condition) Offset() int {
	if c.offset != nil {
		return *c.offset
	}
	return 0
}

func (c Condition) Limit() int {
	if c.limit != nil {
		return *c.limit
	}
	return 0
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.SensorID != "" {
		args["sensor_id"] = c.SensorID
	}
	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.Tenants != nil {
		args["tenants"] = c.Tenants
	}
	if c.Tenant != "" {
		args["tenant"] = c.Tenant
	}
	if c.AlertID != "" {
		args["alert_id"] = c.AlertID
	}
	if len(c.Kinds) > 0 {
		args["kinds"] = c.Kinds
	}
	if len(c.Status) > 0 {
		args["status"] = c.Status
	}
	if len(c.Severities) > 0 {
		args["severities"] = c.Severities
	}
	if c.RuleID != "" {
		args["rule_id"] = c.RuleID
	}
	if c.Active != nil {
		args["active"] = *c.Active
	}
	if c.Actor != "" {
		args["actor"] = c.Actor
	}
	if c.Action != "" {
		args["action"] = c.Action
	}
	if c.ResourceType != "" {
		args["resource_type"] = c.ResourceType
	}
	if c.ResourceID != "" {
		args["resource_id"] = c.ResourceID
	}
	if !c.Since.IsZero() {
		args["since"] = c.Since.UTC()
	}
	if !c.Until.IsZero() {
		args["until"] = c.Until.UTC()
	}
	if c.Search != "" {
		args["search"] = "%" + c.Search + "%"
	}
	if c.offset != nil {
		args["offset"] = *c.offset
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.SensorID != "" {
		where = append(where, "sensor_id = @sensor_id")
	}

	if c.DeviceID != "" {
		where = append(where, "device_id = @device_id")
	}

	if len(c.Tenant) > 0 && len(c.Tenants) > 0 && slices.Contains(c.Tenants, c.Tenant) {
		where = append(where, "tenant = @tenant")
	} else if len(c.Tenants) > 0 {
		where = append(where, "tenant = ANY(@tenants)")
	}

	if c.AlertID != "" {
		where = append(where, "alert_id = @alert_id")
	}

	if len(c.Kinds) > 0 {
		where = append(where, "kind = ANY(@kinds)")
	}

	if len(c.Status) > 0 {
		where = append(where, "status = ANY(@status)")
	}

	if len(c.Severities) > 0 {
		where = append(where, "severity = ANY(@severities)")
	}

	if c.RuleID != "" {
		where = append(where, "rule_id = @rule_id")
	}

	if c.Active != nil {
		where = append(where, "active = @active")
	}

	if c.Actor != "" {
		where = append(where, "actor = @actor")
	}

	if c.Action != "" {
		where = append(where, "action = @action")
	}

	if c.ResourceType != "" {
		where = append(where, "resource_type = @resource_type")
	}

	if c.ResourceID != "" {
		where = append(where, "resource_id = @resource_id")
	}

	if !c.Since.IsZero() {
		where = append(where, "observed_at >= @since")
	}

	if !c.Until.IsZero() {
		where = append(where, "observed_at <= @until")
	}

	if c.Bounds != nil {
		where = append(where, fmt.Sprintf("location <@ BOX '((%f,%f),(%f,%f))'", c.Bounds.MinX, c.Bounds.MinY, c.Bounds.MaxX, c.Bounds.MaxY))
	}

	if c.Search != "" {
		where = append(where, "(device_id ILIKE @search OR sensor_id ILIKE @search OR data ->> 'name' ILIKE @search)")
	}

	if !c.IncludeDeleted {
		where = append(where, "deleted=FALSE")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

var re = regexp.MustCompile(`[^a-zA-ZåäöÅÄÖ0-9 _,;().:-]+|[%]`)

func WithSearch(s string) ConditionFunc {
	return func(c *Condition) *Condition {
		s = re.ReplaceAllString(s, "")
		c.Search = strings.TrimSpace(s)
		return c
	}
}

func WithSortBy(sortBy string) ConditionFunc {
	return func(c *Condition) *Condition {
		switch strings.ToLower(sortBy) {
		case "sensor_id":
			c.sortBy = "sensor_id"
		case "device_id":
			c.sortBy = "device_id"
		case "name":
			c.sortBy = "data ->> 'name'"
		case "kind":
			c.sortBy = "kind"
		case "status":
			c.sortBy = "status"
		case "severity":
			c.sortBy = "severity"
		case "priority":
			c.sortBy = "priority"
		case "observed_at":
			c.sortBy = "observed_at"
		case "modified_on":
			c.sortBy = "modified_on"
		}

		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

func WithSensorID(sensorID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SensorID = sensorID
		return c
	}
}

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithTenant(tenant string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = append(c.Tenants, tenant)
		c.Tenants = unique(c.Tenants)
		c.Tenant = tenant
		return c
	}
}

func WithTenants(tenants []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = unique(tenants)
		return c
	}
}

func WithAlertID(alertID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AlertID = alertID
		return c
	}
}

func WithKinds(kinds []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Kinds = kinds
		return c
	}
}

func WithStatus(status []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Status = status
		return c
	}
}

func WithSeverities(severities []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Severities = severities
		return c
	}
}

func WithRuleID(ruleID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.RuleID = ruleID
		return c
	}
}

func WithActive(active bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Active = &active
		return c
	}
}

func WithActor(actor string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Actor = actor
		return c
	}
}

func WithAction(action string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Action = action
		return c
	}
}

func WithResourceType(resourceType string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ResourceType = resourceType
		return c
	}
}

func WithResourceID(resourceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ResourceID = resourceID
		return c
	}
}

func WithSince(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Since = ts
		return c
	}
}

func WithUntil(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Until = ts
		return c
	}
}

func WithBounds(north, south, east, west float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Bounds = &Box{MinX: west, MaxX: east, MinY: south, MaxY: north}
		return c
	}
}

func WithDeleted() ConditionFunc {
	return func(c *Condition) *Condition {
		c.IncludeDeleted = true
		return c
	}
}

func unique(s []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range s {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

func ParseConditions(ctx context.Context, params map[string][]string) []ConditionFunc {
	log := logging.GetFromContext(ctx)

	conditions := make([]ConditionFunc, 0)

	parseTime := func(v string) (time.Time, bool) {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for k, v := range params {
		switch strings.ToLower(k) {
		case "sensor_id":
			conditions = append(conditions, WithSensorID(v[0]))
		case "device_id":
			conditions = append(conditions, WithDeviceID(v[0]))
		case "kind":
			conditions = append(conditions, WithKinds(v))
		case "type":
			conditions = append(conditions, WithKinds(v))
		case "status":
			conditions = append(conditions, WithStatus(v))
		case "severity":
			conditions = append(conditions, WithSeverities(v))
		case "rule_id":
			conditions = append(conditions, WithRuleID(v[0]))
		case "active":
			active, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithActive(active))
		case "actor":
			conditions = append(conditions, WithActor(v[0]))
		case "action":
			conditions = append(conditions, WithAction(v[0]))
		case "resource_type":
			conditions = append(conditions, WithResourceType(v[0]))
		case "resource_id":
			conditions = append(conditions, WithResourceID(v[0]))
		case "limit":
			limit, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithLimit(limit))
		case "offset":
			offset, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithOffset(offset))
		case "sortby":
			conditions = append(conditions, WithSortBy(v[0]))
		case "sortorder":
			conditions = append(conditions, WithSortDesc(strings.EqualFold(v[0], "desc")))
		case "bounds":
			coords := extractCoordsFromQuery(v[0])
			conditions = append(conditions, WithBounds(coords.MaxLat, coords.MinLat, coords.MaxLon, coords.MinLon))
		case "search":
			conditions = append(conditions, WithSearch(v[0]))
		case "tenant":
			conditions = append(conditions, WithTenant(v[0]))
		case "since":
			if t, ok := parseTime(v[0]); ok {
				conditions = append(conditions, WithSince(t))
			}
		case "until":
			if t, ok := parseTime(v[0]); ok {
				conditions = append(conditions, WithUntil(t))
			}
		default:
			log.Debug("unknown query parameter", "param", k, "value", v[0])
		}
	}
	return conditions
}

func extractCoordsFromQuery(bounds string) types.Bounds {
	trimmed := strings.Trim(bounds, "[]")

	pairs := strings.Split(trimmed, ";")

	coords1 := strings.Split(pairs[0], ",")
	coords2 := strings.Split(pairs[1], ",")

	seLat, _ := strconv.ParseFloat(coords1[0], 64)
	nwLon, _ := strconv.ParseFloat(coords1[1], 64)
	nwLat, _ := strconv.ParseFloat(coords2[0], 64)
	seLon, _ := strconv.ParseFloat(coords2[1], 64)

	coords := types.Bounds{
		MinLat: seLat,
		MinLon: nwLon,
		MaxLat: nwLat,
		MaxLon: seLon,
	}

	return coords
}
