package models

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

type FieldType string

const (
	FieldID       FieldType = "id"
	FieldRef      FieldType = "reference"
	FieldText     FieldType = "text"
	FieldLongText FieldType = "longtext"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldBool     FieldType = "bool"
	FieldInt      FieldType = "int"
	FieldTime     FieldType = "datetime"
	FieldList     FieldType = "list"
	FieldChoice   FieldType = "choice"
)

// Field describes one editable (or read-only) attribute of a record.
type Field struct {
	Name      string    `json:"name"`
	Column    string    `json:"column"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	ReadOnly  bool      `json:"readOnly,omitempty"`
	MaxLength int       `json:"maxLength,omitempty"`
	Min       *int      `json:"min,omitempty"`
	Max       *int      `json:"max,omitempty"`
	Choices   []string  `json:"choices,omitempty"`
	Refers    string    `json:"refers,omitempty"`
}

// Descriptor is the declarative schema of one record kind. The admin surface and the
// fixture tooling are both driven by it.
type Descriptor struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Table       string  `json:"table"`
	FixtureFile string  `json:"fixtureFile"`
	ReadOnly    bool    `json:"readOnly"`
	Fields      []Field `json:"fields"`
}

// WritableFields returns the fields a client may supply.
func (d Descriptor) WritableFields() []Field {
	fields := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if !f.ReadOnly {
			fields = append(fields, f)
		}
	}
	return fields
}

var (
	AuthorDescriptor         = describe(&Author{}, "authors", "Authors", "authors.json", false)
	BlogPostDescriptor       = describe(&BlogPost{}, "blog-posts", "Blog posts", "blog.json", false)
	CategoryDescriptor       = describe(&Category{}, "categories", "Categories", "categories.json", false)
	ProjectDescriptor        = describe(&Project{}, "projects", "Projects", "portfolio.json", false)
	ServiceDescriptor        = describe(&Service{}, "services", "Services", "services.json", false)
	DemoProjectDescriptor    = describe(&DemoProject{}, "demo-projects", "Demo projects", "demo_projects.json", false)
	TestimonialDescriptor    = describe(&Testimonial{}, "testimonials", "Testimonials", "testimonials.json", false)
	FAQDescriptor            = describe(&FAQ{}, "faqs", "FAQs", "faq.json", false)
	ContactMessageDescriptor = describe(&ContactMessage{}, "contact-messages", "Contact messages", "contact.json", true)
)

// Descriptors returns every record kind, parents before the records that reference them.
func Descriptors() []Descriptor {
	return []Descriptor{
		AuthorDescriptor,
		BlogPostDescriptor,
		CategoryDescriptor,
		ProjectDescriptor,
		ServiceDescriptor,
		DemoProjectDescriptor,
		TestimonialDescriptor,
		FAQDescriptor,
		ContactMessageDescriptor,
	}
}

func DescriptorByName(name string) (Descriptor, bool) {
	for _, d := range Descriptors() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// AllModels lists one instance of every persisted model, in dependency order.
func AllModels() []any {
	return []any{
		&Author{},
		&BlogPost{},
		&Category{},
		&Project{},
		&Service{},
		&DemoProject{},
		&Testimonial{},
		&FAQ{},
		&ContactMessage{},
	}
}

var (
	uuidType       = reflect.TypeOf(uuid.UUID{})
	timeType       = reflect.TypeOf(time.Time{})
	stringListType = reflect.TypeOf(StringList{})
	schemaCache    = &sync.Map{}
)

func describe(model any, name, label, fixtureFile string, readOnly bool) Descriptor {
	s, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		panic(err)
	}

	d := Descriptor{
		Name:        name,
		Label:       label,
		Table:       s.Table,
		FixtureFile: fixtureFile,
		ReadOnly:    readOnly,
	}
	for _, sf := range s.Fields {
		if sf.DBName == "" || sf.StructField.Tag.Get("json") == "-" {
			continue
		}
		d.Fields = append(d.Fields, describeField(sf))
	}
	return d
}

func describeField(sf *schema.Field) Field {
	f := Field{
		Name:   strings.SplitN(sf.StructField.Tag.Get("json"), ",", 2)[0],
		Column: sf.DBName,
	}

	t := sf.StructField.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == uuidType && sf.PrimaryKey:
		f.Type, f.ReadOnly = FieldID, true
	case t == uuidType:
		f.Type = FieldRef
		f.Refers = strings.TrimSuffix(sf.Name, "ID")
	case t == timeType:
		f.Type = FieldTime
		f.ReadOnly = sf.AutoCreateTime > 0 || sf.AutoUpdateTime > 0
	case t == stringListType:
		f.Type = FieldList
	case t.Kind() == reflect.Bool:
		f.Type = FieldBool
	case t.Kind() == reflect.Int:
		f.Type = FieldInt
	case strings.EqualFold(string(sf.DataType), "text") || strings.Contains(sf.StructField.Tag.Get("gorm"), "type:text"):
		f.Type = FieldLongText
	default:
		f.Type = FieldText
	}

	for _, rule := range strings.Split(sf.StructField.Tag.Get("validate"), ",") {
		key, value, _ := strings.Cut(rule, "=")
		switch key {
		case "dive":
			// rules after dive apply to list entries
			return f
		case "required":
			f.Required = true
		case "email":
			f.Type = FieldEmail
		case "url":
			f.Type = FieldURL
		case "oneof":
			f.Type = FieldChoice
			f.Choices = strings.Fields(value)
		case "max", "min":
			n, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			switch {
			case f.Type == FieldInt && key == "min":
				f.Min = &n
			case f.Type == FieldInt:
				f.Max = &n
			case key == "max":
				f.MaxLength = n
			}
		}
	}
	return f
}
