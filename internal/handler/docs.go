package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const apiDocs = `# {{title}}

Records buy/sell round trips of a currency and reports their profit.

## Auth

When ` + "`auth.token`" + ` is configured every /api/ route requires
` + "`Authorization: Bearer <token>`" + `. Health endpoints are public.

## Numbers

Amounts are accepted as JSON numbers or as strings written the local way:
"100.000" is one hundred thousand and "2,5" is two and a half.

In strings a single "." followed by exactly three digits always groups
thousands, so "1187.500" reads as 1187500. Send decimal prices as JSON
numbers (1187.5) or with a comma ("1187,5").

## Routes

| Method | Path | |
|:---|:---|:---|
| GET | /healthz | liveness |
| GET | /readyz | database reachable |
| POST | /api/v1/movements | calculate and save a movement |
| GET | /api/v1/movements | list movements, most recent first |
| GET | /api/v1/movements/:id | one movement |
| DELETE | /api/v1/movements/:id | remove a movement |
| GET | /api/v1/movements/:id/reinvest | capital for the next round trip |
| GET | /api/v1/summary | total and average profit |
| POST | /api/v1/calculate | preview without saving |
| POST | /api/v1/simulate | repeated cycles, with or without reinvestment |

## Commission modes

- ` + "`none`" + `: net proceeds equal gross proceeds.
- ` + "`percentage`" + `: value is the percentage of gross proceeds kept by the exchange.
- ` + "`fixed-net-amount`" + `: value is the amount actually received.
`

// DocsHandler serves the API guide as Markdown, or as HTML with
// ?format=html.
type DocsHandler struct {
	Title string
}

func (h *DocsHandler) Register(r *gin.Engine) {
	r.GET("/docs", h.docs)
}

func (h *DocsHandler) markdown() string {
	title := strings.TrimSpace(h.Title)
	if title == "" {
		title = "Control de Rulo"
	}
	return strings.Replace(apiDocs, "{{title}}", title, 1)
}

func (h *DocsHandler) docs(c *gin.Context) {
	md := h.markdown()
	if !strings.EqualFold(c.Query("format"), "html") {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, md)
		return
	}
	var buf bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := conv.Convert([]byte(md), &buf); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
