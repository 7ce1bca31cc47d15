package roster

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// Header of the scaffold file created when no roster exists yet. The
// Russian column names match the files the tool has always consumed;
// English equivalents are accepted on read.
const scaffoldHeader = "ФИО;Группа;Номер Варианта"

type Student struct {
	FullName string
	Group    string
	Variant  string // fixed variant override, empty when unset
}

type Roster struct {
	Students []Student
}

// CreateScaffold writes an empty roster file with the expected header.
func CreateScaffold(path string) error {
	return os.WriteFile(path, []byte(scaffoldHeader+"\n"), 0644)
}

// Load reads the roster file, trying the semicolon delimiter first and
// falling back to commas. Rows without a name or group are skipped.
func Load(path string) (*Roster, error) {
	log.Printf("Reading student roster from: %s\n", path)
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading roster file: %v\n", err)
		return nil, fmt.Errorf("error reading roster file: %w", err)
	}

	students, err := parseStudents(content, ';')
	if err != nil || len(students) == 0 {
		var commaErr error
		students, commaErr = parseStudents(content, ',')
		if commaErr != nil {
			if err == nil {
				err = commaErr
			}
			return nil, fmt.Errorf("error parsing roster: %w", err)
		}
	}

	log.Printf("Parsed %d roster rows\n", len(students))
	return &Roster{Students: students}, nil
}

func parseStudents(content []byte, delimiter rune) ([]Student, error) {
	r := csv.NewReader(strings.NewReader(string(content)))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(header[i]), "\ufeff")
	}
	col := func(row []string, names ...string) string {
		for _, name := range names {
			for i, h := range header {
				if strings.EqualFold(h, name) && i < len(row) {
					return strings.TrimSpace(row[i])
				}
			}
		}
		return ""
	}

	var students []Student
	for _, row := range rows[1:] {
		name := col(row, "ФИО", "Name", "Full Name")
		if name == "" {
			surname := col(row, "Фамилия", "Last Name")
			given := col(row, "Имя", "First Name")
			name = strings.TrimSpace(surname + " " + given)
		}
		group := col(row, "Группа", "Группы", "Данные о пользователе", "Group")
		variant := col(row, "Номер Варианта", "Вариант", "Variant")
		if name == "" || group == "" {
			continue
		}
		students = append(students, Student{
			FullName: name,
			Group:    group,
			Variant:  variant,
		})
	}
	return students, nil
}

// Save writes the roster back with the scaffold header and semicolon
// delimiter, preserving per-student variant overrides.
func (r *Roster) Save(path string) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'
	if err := w.Write(strings.Split(scaffoldHeader, ";")); err != nil {
		return fmt.Errorf("error writing roster header: %w", err)
	}
	for _, s := range r.Students {
		if err := w.Write([]string{s.FullName, s.Group, s.Variant}); err != nil {
			return fmt.Errorf("error writing roster row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error writing roster: %w", err)
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// Groups lists the distinct group names in sorted order.
func (r *Roster) Groups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, s := range r.Students {
		if !seen[s.Group] {
			seen[s.Group] = true
			groups = append(groups, s.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// InGroup returns the group's students ordered by full name. The order
// is what positional variant numbering is computed from.
func (r *Roster) InGroup(group string) []Student {
	var res []Student
	for _, s := range r.Students {
		if s.Group == group {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].FullName < res[j].FullName
	})
	return res
}

// Lookup finds a student by group and full name.
func (r *Roster) Lookup(group, fullName string) (Student, bool) {
	for _, s := range r.Students {
		if s.Group == group && s.FullName == fullName {
			return s, true
		}
	}
	return Student{}, false
}

// SetVariant records a per-student variant override.
func (r *Roster) SetVariant(group, fullName, variant string) bool {
	for i, s := range r.Students {
		if s.Group == group && s.FullName == fullName {
			r.Students[i].Variant = variant
			return true
		}
	}
	return false
}
