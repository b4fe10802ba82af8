package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldKind is the type a submitted value is coerced to once presence has
// been checked.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindUint
	KindFloat
	KindTime
	KindDate
	KindBool
)

func (k FieldKind) String() string {
	switch k {
	case KindInt, KindUint:
		return "an integer"
	case KindFloat:
		return "a number"
	case KindTime:
		return "a date and time"
	case KindDate:
		return "a date (YYYY-MM-DD)"
	case KindBool:
		return "a boolean"
	default:
		return "a string"
	}
}

// Field describes one request field.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// Rules is a validator tag applied to the coerced value, e.g. "gt=0".
	Rules string
	// RulesFunc is consulted instead of Rules when the bound depends on the
	// current time.
	RulesFunc func() string
	// Message replaces the default range error.
	Message string
	// Messages overrides Message for a specific failing tag.
	Messages map[string]string

	// Form rendering hints.
	InputType  string
	OptionsKey string
	Secret     bool
}

func (f Field) rules() string {
	if f.RulesFunc != nil {
		return f.RulesFunc()
	}
	return f.Rules
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// FieldSpec is the validation contract of a resource's write operations.
type FieldSpec struct {
	Fields []Field
	// RequiredMessage replaces the default "missing fields" message.
	RequiredMessage string
}

// RequiredFields lists the names of the required fields in declaration order.
func (s FieldSpec) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Input is the raw request payload keyed by wire name.
type Input map[string]interface{}

// InputFromJSON decodes a JSON object body. Numbers are kept as json.Number
// so integers are not rounded through float64.
func InputFromJSON(c *gin.Context) (Input, error) {
	in := Input{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return in, nil
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Malformed JSON or invalid request body", err)
	}
	return in, nil
}

// InputFromForm reads a url-encoded or multipart form body.
func InputFromForm(c *gin.Context) (Input, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, apperr.Wrap(apperr.Validation, "Invalid form submission", err)
	}
	in := Input{}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			in[key] = values[len(values)-1]
		}
	}
	return in, nil
}

// Strings renders the input as strings for re-filling a form.
func (in Input) Strings() map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v == nil {
			out[k] = ""
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func present(v interface{}, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Values holds coerced field values. Absent optional fields have no entry.
type Values map[string]interface{}

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v Values) Uint(name string) uint {
	n, _ := v[name].(uint)
	return n
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v Values) Date(name string) models.Date {
	d, _ := v[name].(models.Date)
	return d
}

func (v Values) Bool(name string, fallback bool) bool {
	b, ok := v[name].(bool)
	if !ok {
		return fallback
	}
	return b
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimals", decimalPlaces)
	return v
}

// decimalPlaces implements the "decimals=N" tag: a float may carry at most N
// fractional digits, matching a decimal(p,N) column.
func decimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil || places < 0 {
		return false
	}
	field := fl.Field()
	if !field.CanFloat() {
		return true
	}
	// The shortest round-trip form is the number as it was written.
	repr := strconv.FormatFloat(field.Float(), 'f', -1, 64)
	dot := strings.IndexByte(repr, '.')
	return dot < 0 || len(repr)-dot-1 <= places
}

func (f Field) failureMessage(err error, rules string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := f.Messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("Field '%s' is out of range (%s)", f.Name, rules)
}

// Validate checks presence of every required field first, then coerces the
// present fields, then applies the range rules. The first failure wins.
func (s FieldSpec) Validate(in Input) (Values, error) {
	var missing []string
	for _, f := range s.Fields {
		raw, ok := in[f.Name]
		if f.Required && !present(raw, ok) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		msg := s.RequiredMessage
		if msg == "" {
			msg = "Missing required fields: " + strings.Join(missing, ", ")
		}
		return nil, apperr.New(apperr.Validation, msg)
	}

	values := Values{}
	for _, f := range s.Fields {
		raw, ok := in[f.Name]
		if !present(raw, ok) {
			continue
		}
		v, err := coerce(f.Kind, raw)
		if err != nil {
			return nil, apperr.Wrap(apperr.Validation, fmt.Sprintf("Field '%s' must be %s", f.Name, f.Kind), err)
		}
		values[f.Name] = v
	}

	for _, f := range s.Fields {
		v, ok := values[f.Name]
		rules := f.rules()
		if !ok || rules == "" {
			continue
		}
		if err := validate.Var(rangeValue(v), rules); err != nil {
			return nil, apperr.Wrap(apperr.Validation, f.failureMessage(err, rules), err)
		}
	}
	return values, nil
}

// rangeValue exposes the comparable part of a value to validator tags.
func rangeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.Date:
		return t.Time
	default:
		return v
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func coerce(kind FieldKind, raw interface{}) (interface{}, error) {
	switch kind {
	case KindString:
		switch t := raw.(type) {
		case string:
			return strings.TrimSpace(t), nil
		case json.Number:
			return t.String(), nil
		default:
			return nil, fmt.Errorf("unexpected %T", raw)
		}
	case KindInt:
		return toInt(raw)
	case KindUint:
		n, err := toInt(raw)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative identifier %d", n)
		}
		return uint(n), nil
	case KindFloat:
		return toFloat(raw)
	case KindTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %T", raw)
		}
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unrecognised time %q", s)
	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %T", raw)
		}
		s = strings.TrimSpace(s)
		if len(s) > len(models.DateLayout) {
			s = s[:len(models.DateLayout)]
		}
		return models.ParseDate(s)
	case KindBool:
		switch t := raw.(type) {
		case bool:
			return t, nil
		case string:
			if t == "on" {
				return true, nil
			}
			return strconv.ParseBool(strings.TrimSpace(t))
		default:
			return nil, fmt.Errorf("unexpected %T", raw)
		}
	}
	return nil, fmt.Errorf("unknown field kind %d", kind)
}

func toInt(raw interface{}) (int, error) {
	f, err := toFloat(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%v is not an integer", raw)
	}
	return int(f), nil
}

func toFloat(raw interface{}) (float64, error) {
	switch t := raw.(type) {
	case json.Number:
		return t.Float64()
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%q is not a finite number", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unexpected %T", raw)
	}
}
