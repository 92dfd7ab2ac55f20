package schedule

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleSheet() [][]string {
	return [][]string{
		{"Datum", "Activiteit", "", "", "Namen", "Emails"},
		{"", "Grasmaaien + kanten", "Onkruid wieden", "Groot onderhoud*"},
		{"29-05", "x", "  ", "", "2 bewoners", "Name4, Name5 "},
		{"05-06", "x", "x", "", "2 bewoners", "Name6 en Name7"},
		{"12-06", "x", "", "", "2 bewoners"},
	}
}

func TestLocateRow(t *testing.T) {
	tests := []struct {
		target    string
		want      []string
		wantFound bool
	}{
		{"29-05", []string{"29-05", "x", "  ", "", "2 bewoners", "Name4, Name5 "}, true},
		{"05-06", []string{"05-06", "x", "x", "", "2 bewoners", "Name6 en Name7"}, true},
		{"5-06", []string{"05-06", "x", "x", "", "2 bewoners", "Name6 en Name7"}, true},
		{"12-06", []string{"12-06", "x", "", "", "2 bewoners"}, true},
		{"14-06", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, found := LocateRow(scheduleSheet(), tt.target)
			assert.Equal(t, tt.wantFound, found)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LocateRow(%q) mismatch (-want +got):\n%s", tt.target, diff)
			}
		})
	}
}

func TestLocateRow_SheetWithoutLeadingZero(t *testing.T) {
	rows := [][]string{{"5-07", "x", "", "", "", "Jan"}}
	row, found := LocateRow(rows, "05-07")
	require.True(t, found)
	assert.Equal(t, "Jan", row[5])
}

func TestLocateRow_FirstMatchWins(t *testing.T) {
	rows := [][]string{
		{"05-07", "", "", "", "", "first"},
		{"05-07", "", "", "", "", "second"},
	}
	row, found := LocateRow(rows, "05-07")
	require.True(t, found)
	assert.Equal(t, "first", row[5])
}

func TestLocateRow_SkipsEmptyRows(t *testing.T) {
	rows := [][]string{{}, nil, {"12-06", "x"}}
	row, found := LocateRow(rows, "12-06")
	require.True(t, found)
	assert.Equal(t, "12-06", row[0])
}

func TestExtractNamesField(t *testing.T) {
	tests := []struct {
		row     []string
		want    string
		wantErr bool
	}{
		{[]string{"29-05", "x", "  ", "", "2 bewoners", "Name4, Name5 "}, "Name4, Name5 ", false},
		{[]string{"05-06", "x", "x", "", "2 bewoners", "Name6 en Name7"}, "Name6 en Name7", false},
		{[]string{"12-06", "x", "", "", "2 bewoners"}, "", true},
		{nil, "", true},
	}

	for _, tt := range tests {
		got, err := ExtractNamesField(tt.row, DefaultNamesColumn)
		assert.Equal(t, tt.want, got)
		if tt.wantErr {
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNamesColumnMissing))
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestExtractNamesField_ErrorMessage(t *testing.T) {
	_, err := ExtractNamesField([]string{"12-06", "x"}, DefaultNamesColumn)

	var nfe *NamesFieldError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, []string{"12-06", "x"}, nfe.Row)
	assert.Contains(t, err.Error(), "Names information not found in sheet. row:")
	assert.Contains(t, err.Error(), `"12-06"`)
}

func TestExtractNamesField_NegativeIndex(t *testing.T) {
	_, err := ExtractNamesField([]string{"a"}, -1)
	assert.ErrorIs(t, err, ErrNamesColumnMissing)
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Name4, Name5 ", []string{"Name4", "Name5"}},
		{"Name4 en Name5 ", []string{"Name4", "Name5"}},
		{"Name4. Name5 ", []string{"Name4", "Name5"}},
		{"Name1., Name2, Name3", []string{"Name1", "Name2", "Name3"}},
		{"Name4, Name5 en Name6 / Name7", []string{"Name4", "Name5", "Name6", "Name7"}},
		{"Henk Bendien", []string{"Henk Bendien"}},
		{"Ben van Dijk", []string{"Ben van Dijk"}},
		{" , / . ", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitNames(tt.in)); diff != "" {
				t.Errorf("SplitNames(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
