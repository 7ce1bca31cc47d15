package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gradelab/gradesheet/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "student_list.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSemicolonDelimited(t *testing.T) {
	path := writeRoster(t, "ФИО;Группа;Номер Варианта\n"+
		"Иванов Иван;ИУ7-11;\n"+
		"Петров Пётр;ИУ7-11;5\n"+
		"Сидорова Анна;ИУ7-12;\n")

	r, err := roster.Load(path)
	require.NoError(t, err)
	require.Len(t, r.Students, 3)

	assert.Equal(t, []string{"ИУ7-11", "ИУ7-12"}, r.Groups())

	group := r.InGroup("ИУ7-11")
	require.Len(t, group, 2)
	assert.Equal(t, "Иванов Иван", group[0].FullName)
	assert.Equal(t, "5", group[1].Variant)
}

func TestLoadCommaFallbackAndEnglishHeaders(t *testing.T) {
	path := writeRoster(t, "Name,Group,Variant\n"+
		"Alice Cooper,SE-1,\n"+
		"Bob Dylan,SE-1,7\n")

	r, err := roster.Load(path)
	require.NoError(t, err)
	require.Len(t, r.Students, 2)

	s, ok := r.Lookup("SE-1", "Bob Dylan")
	require.True(t, ok)
	assert.Equal(t, "7", s.Variant)
}

func TestLoadSurnameGivenNameFallback(t *testing.T) {
	path := writeRoster(t, "Фамилия;Имя;Группа\n"+
		"Иванов;Иван;ИУ7-11\n"+
		";;ИУ7-11\n") // row without a name is skipped

	r, err := roster.Load(path)
	require.NoError(t, err)
	require.Len(t, r.Students, 1)
	assert.Equal(t, "Иванов Иван", r.Students[0].FullName)
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	path := writeRoster(t, "\ufeffФИО;Группа;Номер Варианта\nИванов Иван;ИУ7-11;\n")

	r, err := roster.Load(path)
	require.NoError(t, err)
	require.Len(t, r.Students, 1)
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeRoster(t, "ФИО;Группа;Номер Варианта\nИванов Иван;ИУ7-11;\n")

	r, err := roster.Load(path)
	require.NoError(t, err)

	require.True(t, r.SetVariant("ИУ7-11", "Иванов Иван", "12"))
	require.NoError(t, r.Save(path))

	reloaded, err := roster.Load(path)
	require.NoError(t, err)
	s, ok := reloaded.Lookup("ИУ7-11", "Иванов Иван")
	require.True(t, ok)
	assert.Equal(t, "12", s.Variant)
}

func TestCreateScaffold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student_list.csv")
	require.NoError(t, roster.CreateScaffold(path))

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Empty(t, r.Students)
	assert.Empty(t, r.Groups())
}

func TestVariantForPositional(t *testing.T) {
	students := make([]roster.Student, 31)
	for i := range students {
		students[i] = roster.Student{FullName: "s", Group: "g"}
	}

	tests := []struct {
		idx  int
		want string
	}{
		{0, "1"},
		{28, "29"},
		{29, "1"},  // wraps past the count
		{30, "2"},
	}
	for _, tc := range tests {
		got, err := roster.VariantFor(students, tc.idx, 29)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "idx %d", tc.idx)
	}
}

func TestVariantForWrapToCountNotZero(t *testing.T) {
	students := make([]roster.Student, 58)
	for i := range students {
		students[i] = roster.Student{FullName: "s", Group: "g"}
	}
	got, err := roster.VariantFor(students, 57, 29) // position 58 = 2*29
	require.NoError(t, err)
	assert.Equal(t, "29", got)
}

func TestVariantForOverrideWins(t *testing.T) {
	students := []roster.Student{
		{FullName: "a", Group: "g"},
		{FullName: "b", Group: "g", Variant: "17"},
	}
	got, err := roster.VariantFor(students, 1, 29)
	require.NoError(t, err)
	assert.Equal(t, "17", got)
}

func TestVariantForRejectsBadCount(t *testing.T) {
	students := []roster.Student{{FullName: "a", Group: "g"}}
	_, err := roster.VariantFor(students, 0, 0)
	require.Error(t, err)
	_, err = roster.VariantFor(students, 0, -3)
	require.Error(t, err)
}
