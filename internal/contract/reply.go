package contract

import "encoding/json"

// Reply is what the server sends back for a submission. Every field is
// optional; success or failure is carried by the HTTP status.
type Reply struct {
	Title       string `json:"title,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	Status      string `json:"status,omitempty"`
	Code        string `json:"code,omitempty"`
	URL         string `json:"url,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Redirect    *bool  `json:"redirect,omitempty"`
}

// ParseReply decodes a reply body. A body that is not a JSON object yields an
// empty Reply rather than an error.
func ParseReply(body []byte) Reply {
	var r Reply
	if err := json.Unmarshal(body, &r); err != nil {
		return Reply{}
	}
	return r
}

// Target returns where the client should navigate after success, or "" when
// the server asked not to redirect or gave no target.
func (r Reply) Target() string {
	if r.Redirect != nil && !*r.Redirect {
		return ""
	}
	if r.URL != "" {
		return r.URL
	}
	return r.RedirectURL
}
