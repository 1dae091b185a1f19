package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	start := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	end := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	from, to := dayBounds(start, end)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), to)
}

func TestTimeframePicker_Periods(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	type testCase struct {
		name  string
		downs int
		want  TimeframeSelectedMsg
	}

	tests := []testCase{
		{
			name: "Today",
			want: TimeframeSelectedMsg{
				Start: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "LastMonth",
			downs: 3,
			want: TimeframeSelectedMsg{
				Start: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "AllTime",
			downs: 5,
			want:  TimeframeSelectedMsg{All: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTimeframePicker()
			p.now = func() time.Time { return now }

			for range tt.downs {
				p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
			}

			p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.True(t, p.IsSelecting())
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestTimeframePicker_Custom(t *testing.T) {
	type testCase struct {
		name    string
		start   string
		end     string
		wantErr bool
		want    TimeframeSelectedMsg
	}

	tests := []testCase{
		{
			name:  "SingleDay",
			start: "2026-01-31",
			end:   "2026-01-31",
			want: TimeframeSelectedMsg{
				Start: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "EndBeforeStart",
			start:   "2026-02-10",
			end:     "2026-02-01",
			wantErr: true,
		},
		{
			name:    "Malformed",
			start:   "10/02/2026",
			end:     "2026-02-11",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTimeframePicker()
			p.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
			p.custom = true
			p.inputs[0].SetValue(tt.start)
			p.inputs[1].SetValue(tt.end)

			p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

			if tt.wantErr {
				assert.Error(t, p.err)
				assert.Nil(t, cmd)

				return
			}

			require.NoError(t, p.err)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", FormatAmount(decimal.RequireFromString("12.5"), "not-a-code"))
	assert.Contains(t, FormatAmount(decimal.RequireFromString("12.5"), "USD"), "12.50")
}
