package connect

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrMountNotFound возвращается, если на странице нет точки монтирования
var ErrMountNotFound = errors.New("mount point not found")

// Селекторы точек монтирования страницы по умолчанию
const (
	VisualSelector = "#visual"
	LegendSelector = ".legend"
)

// Surface - одна поверхность рисования (svg), добавленная в точку монтирования
type Surface struct {
	ID     string
	Kind   string
	Markup template.HTML
}

// Mount - контейнер страницы, найденный по селектору
type Mount struct {
	Selector string
	Surfaces []Surface
}

// Page - документ, в который графики добавляют свои поверхности
type Page struct {
	mu sync.Mutex

	ID           string
	Title        string
	Mounts       []*Mount
	Body         []template.HTML
	LastModified time.Time
}

// NewPage создает страницу с указанными точками монтирования.
// Без селекторов создаются #visual и .legend.
func NewPage(title string, selectors ...string) *Page {
	if len(selectors) == 0 {
		selectors = []string{LegendSelector, VisualSelector}
	}
	p := &Page{
		ID:           uuid.New().String(),
		Title:        title,
		LastModified: time.Now(),
	}
	for _, s := range selectors {
		p.Mounts = append(p.Mounts, &Mount{Selector: s})
	}
	return p
}

// Has сообщает, есть ли на странице точка монтирования
func (p *Page) Has(selector string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(selector) != nil
}

func (p *Page) find(selector string) *Mount {
	for _, m := range p.Mounts {
		if m.Selector == selector {
			return m
		}
	}
	return nil
}

// Append добавляет поверхность в точку монтирования и возвращает ее ID.
// Повторный вызов добавляет еще одну поверхность, старые не удаляются.
func (p *Page) Append(selector, kind string, markup []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m := p.find(selector)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrMountNotFound, selector)
	}
	s := Surface{
		ID:     "surface-" + uuid.New().String(),
		Kind:   kind,
		Markup: template.HTML(stripDeclaration(markup)),
	}
	m.Surfaces = append(m.Surfaces, s)
	p.LastModified = time.Now()
	return s.ID, nil
}

// stripDeclaration убирает xml декларацию: svg встраивается в HTML
func stripDeclaration(markup []byte) []byte {
	trimmed := bytes.TrimSpace(markup)
	if !bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return markup
	}
	if end := bytes.Index(trimmed, []byte("?>")); end >= 0 {
		return bytes.TrimSpace(trimmed[end+2:])
	}
	return markup
}

// AppendBody добавляет элемент в конец body страницы
func (p *Page) AppendBody(markup string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Body = append(p.Body, template.HTML(markup))
	p.LastModified = time.Now()
}

// Surfaces возвращает копию поверхностей точки монтирования
func (p *Page) Surfaces(selector string) []Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := p.find(selector)
	if m == nil {
		return nil
	}
	return append([]Surface(nil), m.Surfaces...)
}

// Render записывает страницу как самостоятельный HTML документ
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	type mountView struct {
		Tag      string
		Attr     string
		Name     string
		Surfaces []Surface
	}
	data := struct {
		Title  string
		ID     string
		Mounts []mountView
		Body   []template.HTML
	}{Title: p.Title, ID: p.ID, Body: p.Body}

	for _, m := range p.Mounts {
		attr, name := "id", strings.TrimPrefix(m.Selector, "#")
		if strings.HasPrefix(m.Selector, ".") {
			attr, name = "class", strings.TrimPrefix(m.Selector, ".")
		}
		data.Mounts = append(data.Mounts, mountView{Tag: "div", Attr: attr, Name: name, Surfaces: m.Surfaces})
	}
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Open Sans", sans-serif; }
.tooltip { position: absolute; display: none; padding: 6px 10px; background: #fff; border: 1px solid #002E72; border-radius: 4px; color: #002E72; font-size: 14px; pointer-events: none; }
</style>
</head>
<body data-page="{{.ID}}">
{{range .Mounts}}<div {{if eq .Attr "id"}}id="{{.Name}}"{{else}}class="{{.Name}}"{{end}}>
{{range .Surfaces}}<div class="surface" id="{{.ID}}" data-kind="{{.Kind}}">{{.Markup}}</div>
{{end}}</div>
{{end}}{{range .Body}}{{.}}
{{end}}<script>
(function () {
  var tip = document.querySelector("div.tooltip");
  if (!tip) { return; }
  document.querySelectorAll("[data-tooltip]").forEach(function (el) {
    el.addEventListener("mouseover", function (e) {
      tip.style.left = (e.pageX + 10) + "px";
      tip.style.top = (e.pageY - 25) + "px";
      tip.style.display = "inline-block";
      tip.innerHTML = el.getAttribute("data-tooltip");
    });
    el.addEventListener("mouseout", function () {
      tip.style.display = "none";
    });
  });
})();
</script>
</body>
</html>
`))
