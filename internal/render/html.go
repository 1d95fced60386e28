// Package render turns a billing view snapshot into its outputs: the card
// list of the payments page and a spreadsheet export.
package render

import (
	"html/template"
	"io"

	"room-billing/internal/domain"
)

const cardsTemplate = `{{- if .Error -}}
<div class="alert alert-danger">Failed to load data: {{ .Error }}</div>
{{ end -}}
{{- if not .Rows -}}
<div class="alert alert-secondary">No data found.</div>
{{- else -}}
{{- range $i, $row := .Rows }}
<div class="card mb-2 shadow-sm">
  <div class="card-body d-flex justify-content-between align-items-center">
    <div>
      <div class="fw-bold">{{ inc $i }}. {{ $row.PatientName }}</div>
      <div class="text-muted">Room: {{ $row.RoomName }}</div>
    </div>
    <div class="text-end">
      <div>Billed: <strong>{{ money $row.Billed }}</strong></div>
      <div>Paid: <strong class="text-success">{{ money $row.Paid }}</strong></div>
      <div>Balance: <strong class="text-danger">{{ money $row.Balance }}</strong></div>
    </div>
  </div>
  <div class="card-footer d-flex gap-2 justify-content-between align-items-center flex-wrap">
    <span class="badge bg-{{ badge $row.Status }}">{{ label $row.Status }}</span>
    <div class="ms-auto d-flex gap-2">
      {{- if $row.Payable }}
      <button type="button" class="btn btn-sm btn-outline-secondary" data-action="add-payment" data-patient="{{ $row.PatientID }}" data-patient-name="{{ $row.PatientName }}">Add payment</button>
      {{- end }}
      <button type="button" class="btn btn-sm btn-outline-primary" data-action="open-payments" data-patient="{{ $row.PatientID }}">Payments</button>
    </div>
  </div>
</div>
{{- end }}
{{- end }}
`

var cards = template.Must(template.New("cards").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"money": Money,
	"badge": StatusBadge,
	"label": StatusLabel,
}).Parse(cardsTemplate))

// Cards writes the card list for a snapshot. A reload error is shown above
// the last good rows.
func Cards(w io.Writer, snap domain.ViewSnapshot) error {
	return cards.Execute(w, snap)
}
