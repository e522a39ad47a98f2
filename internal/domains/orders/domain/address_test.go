package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "all fields",
			loc:  &Location{Street: "12 Rue Carnot", City: "Dakar", AdminArea: "Dakar", Country: "Sénégal"},
			want: "12 Rue Carnot, Dakar, Dakar, Sénégal",
		},
		{
			name: "city and country only",
			loc:  &Location{City: "Thiès", Country: "Sénégal"},
			want: "Thiès, Sénégal",
		},
		{
			name: "single field",
			loc:  &Location{Street: "Avenue Bourguiba"},
			want: "Avenue Bourguiba",
		},
		{
			name: "all empty",
			loc:  &Location{},
			want: "",
		},
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatAddress(tt.loc))
		})
	}
}
