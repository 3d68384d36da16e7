package model

// HeaderInfo is the current request form: a target header plus the labels of
// its sub-header columns (first MaxSubHeaders are used).
type HeaderInfo struct {
	Header     string   `json:"header"`
	SubHeaders []string `json:"subHeaders"`
}

// HeaderMapping is the legacy request form with explicit per-field output
// selection names.
type HeaderMapping struct {
	Header     string `json:"header"`
	Selected   string `json:"selected"`
	SubHeader1 string `json:"sub_header1,omitempty"`
	Selected1  string `json:"selected1,omitempty"`
	SubHeader2 string `json:"sub_header2,omitempty"`
	Selected2  string `json:"selected2,omitempty"`
	SubHeader3 string `json:"sub_header3,omitempty"`
	Selected3  string `json:"selected3,omitempty"`
}

// ExtractionRequest is the POST /extract payload. Either (CSV + CSVHeaders)
// or the legacy (ExcelURL + ExcelHeaders) pair must be present.
type ExtractionRequest struct {
	ExcelURL     string          `json:"excel_url,omitempty"`
	ExcelHeaders []HeaderMapping `json:"excel_headers,omitempty"`
	CSV          string          `json:"csv,omitempty"`
	CSVHeaders   []HeaderInfo    `json:"csvUrl,omitempty"`
	ExcludePhoto bool            `json:"exclude_photo,omitempty"`
}

// APIResponse is the uniform response envelope: 200 with data on success,
// 400 on missing input, 500 with the error message on extraction failure.
type APIResponse struct {
	StatusCode int      `json:"status_code"`
	Status     bool     `json:"status"`
	Data       []Record `json:"data,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// ToHeaderSpec converts either request form into the internal HeaderSpec.
// The current form uses the header/sub-header names as their own output
// names; the legacy form carries explicit selections.
func (req *ExtractionRequest) ToHeaderSpec() HeaderSpec {
	if len(req.CSVHeaders) > 0 {
		spec := make(HeaderSpec, 0, len(req.CSVHeaders))
		for _, hi := range req.CSVHeaders {
			entry := HeaderEntry{
				Header:        hi.Header,
				Selected:      hi.Header,
				UseSubheaders: len(hi.SubHeaders) > 0,
			}
			for i, sh := range hi.SubHeaders {
				if i >= MaxSubHeaders {
					break
				}
				entry.SubHeaders = append(entry.SubHeaders, SubHeader{Name: sh, Selected: sh})
			}
			spec = append(spec, entry)
		}
		return spec
	}

	spec := make(HeaderSpec, 0, len(req.ExcelHeaders))
	for _, hm := range req.ExcelHeaders {
		entry := HeaderEntry{
			Header:   hm.Header,
			Selected: hm.Selected,
		}
		if entry.Selected == "" {
			entry.Selected = hm.Header
		}
		pairs := [][2]string{
			{hm.SubHeader1, hm.Selected1},
			{hm.SubHeader2, hm.Selected2},
			{hm.SubHeader3, hm.Selected3},
		}
		for _, p := range pairs {
			if p[0] == "" {
				continue
			}
			sel := p[1]
			if sel == "" {
				sel = p[0]
			}
			entry.SubHeaders = append(entry.SubHeaders, SubHeader{Name: p[0], Selected: sel})
		}
		entry.UseSubheaders = len(entry.SubHeaders) > 0
		spec = append(spec, entry)
	}
	return spec
}

// SourceURL returns whichever content source the request carries.
func (req *ExtractionRequest) SourceURL() string {
	if req.CSV != "" {
		return req.CSV
	}
	return req.ExcelURL
}
