package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"sentiviz/internal/connect"
	"sentiviz/internal/model"
	"sentiviz/internal/repository"
	"sentiviz/internal/service"
)

// Sources - пути к наборам данных графиков
type Sources struct {
	Bar    string
	Bubble string
}

// charts - страница и фабрики, уже созданные для нее
type charts struct {
	page  *connect.Page
	donut service.ChartFunc[model.SentimentScore]
}

// ChartController связывает загрузку данных и рисование графиков
type ChartController struct {
	mu sync.Mutex
	// render защищает Engine: его генератор случайных чисел не потокобезопасен
	render sync.Mutex

	repo    *repository.DatasetRepository
	engine  *service.Engine
	logger  *log.Logger
	sources Sources
	current *charts

	Bar    service.BarLayout
	Bubble service.BubbleLayout
	Donut  service.DonutLayout

	// Scores - данные кольцевой диаграммы
	Scores []model.SentimentScore

	issues map[service.Kind][]string
}

func NewChartController(repo *repository.DatasetRepository, eng *service.Engine, sources Sources) *ChartController {
	c := &ChartController{
		repo:    repo,
		engine:  eng,
		logger:  eng.Logger,
		sources: sources,
		Bar:     service.DefaultBarLayout(),
		Bubble:  service.DefaultBubbleLayout(),
		Donut:   service.DefaultDonutLayout(),
		Scores:  model.DefaultSentimentScores(),
		issues:  make(map[service.Kind][]string),
	}
	c.NewPage()
	return c
}

// NewPage заменяет текущую страницу пустой
func (c *ChartController) NewPage() *connect.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &charts{page: connect.NewPage(c.engine.Locale.Translate("Sentiment Charts"))}
	return c.current.page
}

// Page возвращает текущую страницу
func (c *ChartController) Page() *connect.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.page
}

func (c *ChartController) currentCharts() *charts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *ChartController) Sources() Sources {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sources
}

func (c *ChartController) SetSources(s Sources) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = s
}

// Issues возвращает проблемы данных последней загрузки графика
func (c *ChartController) Issues(kind service.Kind) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.issues[kind]...)
}

func (c *ChartController) setIssues(kind service.Kind, issues []repository.RowIssue) {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.String())
	}
	c.mu.Lock()
	c.issues[kind] = out
	c.mu.Unlock()
}

// setScoreIssues проверяет строки Scores так же, как загрузчик проверяет файлы
func (c *ChartController) setScoreIssues() {
	var out []string
	for i := range c.Scores {
		if err := c.Scores[i].Validate(); err != nil {
			out = append(out, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}
	c.mu.Lock()
	c.issues[service.KindDonut] = out
	c.mu.Unlock()
}

func (c *ChartController) loadBar(ctx context.Context) ([]model.WordFrequency, error) {
	res, err := c.repo.LoadWordFrequencies(ctx, c.Sources().Bar)
	if err != nil {
		c.logger.Printf("Ошибка загрузки данных столбчатой диаграммы: %v", err)
		return nil, err
	}
	c.setIssues(service.KindBar, res.Issues)
	return res.Rows, nil
}

func (c *ChartController) loadBubble(ctx context.Context) ([]model.SurveyTerm, error) {
	res, err := c.repo.LoadSurveyTerms(ctx, c.Sources().Bubble)
	if err != nil {
		c.logger.Printf("Ошибка загрузки данных пузырьковой диаграммы: %v", err)
		return nil, err
	}
	c.setIssues(service.KindBubble, res.Issues)
	return res.Rows, nil
}

// DrawBar загружает частоты слов и рисует столбчатую диаграмму
func (c *ChartController) DrawBar(ctx context.Context, selector string) error {
	return c.drawBar(ctx, c.currentCharts(), selector)
}

// DrawBubble загружает термины опроса и рисует пузырьковую диаграмму
func (c *ChartController) DrawBubble(ctx context.Context, selector string) error {
	return c.drawBubble(ctx, c.currentCharts(), selector)
}

// DrawDonut рисует кольцевую диаграмму по Scores
func (c *ChartController) DrawDonut(ctx context.Context, selector string) error {
	return c.drawDonut(ctx, c.currentCharts(), selector)
}

// Draw рисует график указанного типа на текущей странице
func (c *ChartController) Draw(ctx context.Context, kind service.Kind, selector string) error {
	return c.draw(ctx, c.currentCharts(), kind, selector)
}

// BuildPage рисует графики на новой странице, не трогая текущую
func (c *ChartController) BuildPage(ctx context.Context, title string, kinds ...service.Kind) (*connect.Page, error) {
	set := &charts{page: connect.NewPage(title)}
	for _, kind := range kinds {
		if err := c.draw(ctx, set, kind, connect.VisualSelector); err != nil {
			return nil, err
		}
	}
	return set.page, nil
}

func (c *ChartController) draw(ctx context.Context, set *charts, kind service.Kind, selector string) error {
	switch kind {
	case service.KindBar:
		return c.drawBar(ctx, set, selector)
	case service.KindBubble:
		return c.drawBubble(ctx, set, selector)
	case service.KindDonut:
		return c.drawDonut(ctx, set, selector)
	}
	return fmt.Errorf("%w: %q", service.ErrUnknownChart, kind)
}

func (c *ChartController) drawBar(ctx context.Context, set *charts, selector string) error {
	rows, err := c.loadBar(ctx)
	if err != nil {
		return err
	}
	c.render.Lock()
	defer c.render.Unlock()
	draw := service.AnimatedBarChart(set.page, c.engine, c.Bar)
	if err := draw(ctx, selector, rows); err != nil {
		c.logger.Printf("Ошибка рисования столбчатой диаграммы: %v", err)
		return err
	}
	return nil
}

func (c *ChartController) drawBubble(ctx context.Context, set *charts, selector string) error {
	rows, err := c.loadBubble(ctx)
	if err != nil {
		return err
	}
	c.render.Lock()
	defer c.render.Unlock()
	draw := service.AnimatedBubbleChart(set.page, c.engine, c.Bubble)
	if err := draw(ctx, selector, rows); err != nil {
		c.logger.Printf("Ошибка рисования пузырьковой диаграммы: %v", err)
		return err
	}
	return nil
}

// drawDonut создает фабрику кольцевой диаграммы один раз на страницу,
// поэтому div.tooltip в body не повторяется
func (c *ChartController) drawDonut(ctx context.Context, set *charts, selector string) error {
	c.setScoreIssues()
	c.render.Lock()
	defer c.render.Unlock()
	if set.donut == nil {
		set.donut = service.AnimatedDonutChart(set.page, c.engine, c.Donut)
	}
	if err := set.donut(ctx, selector, c.Scores); err != nil {
		c.logger.Printf("Ошибка рисования кольцевой диаграммы: %v", err)
		return err
	}
	return nil
}

// GenerateChart возвращает PNG изображение графика
func (c *ChartController) GenerateChart(ctx context.Context, kind service.Kind) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch kind {
	case service.KindBar:
		var rows []model.WordFrequency
		if rows, err = c.loadBar(ctx); err == nil {
			c.render.Lock()
			err = service.RenderBarPNG(c.engine, rows, c.Bar, &buf)
			c.render.Unlock()
		}
	case service.KindBubble:
		var rows []model.SurveyTerm
		if rows, err = c.loadBubble(ctx); err == nil {
			c.render.Lock()
			err = service.RenderBubblePNG(ctx, c.engine, rows, c.Bubble, &buf)
			c.render.Unlock()
		}
	case service.KindDonut:
		c.setScoreIssues()
		c.render.Lock()
		err = service.RenderDonutPNG(c.engine, c.Scores, c.Donut, &buf)
		c.render.Unlock()
	default:
		err = fmt.Errorf("%w: %q", service.ErrUnknownChart, kind)
	}
	if err != nil {
		c.logger.Printf("Ошибка генерации графика %s: %v", kind, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteInteractive записывает интерактивную HTML страницу ECharts
func (c *ChartController) WriteInteractive(ctx context.Context, kind service.Kind, w io.Writer) error {
	var err error
	switch kind {
	case service.KindBar:
		var rows []model.WordFrequency
		if rows, err = c.loadBar(ctx); err == nil {
			err = service.RenderBarECharts(c.engine, rows, c.Bar, w)
		}
	case service.KindBubble:
		var rows []model.SurveyTerm
		if rows, err = c.loadBubble(ctx); err == nil {
			c.render.Lock()
			err = service.RenderBubbleECharts(ctx, c.engine, rows, c.Bubble, w)
			c.render.Unlock()
		}
	case service.KindDonut:
		err = service.RenderDonutECharts(c.engine, c.Scores, c.Donut, w)
	default:
		err = fmt.Errorf("%w: %q", service.ErrUnknownChart, kind)
	}
	if err != nil {
		c.logger.Printf("Ошибка генерации ECharts %s: %v", kind, err)
	}
	return err
}

// GetPrintableData возвращает PDF отчет со всеми графиками
func (c *ChartController) GetPrintableData(ctx context.Context) ([]byte, error) {
	var sections []service.ReportSection
	for _, kind := range service.Kinds {
		png, err := c.GenerateChart(ctx, kind)
		if err != nil {
			return nil, err
		}
		sections = append(sections, service.ReportSection{
			Kind:   kind,
			Title:  c.engine.Locale.Translate(kind.Title()),
			PNG:    png,
			Issues: c.Issues(kind),
		})
	}

	var buf bytes.Buffer
	if err := service.WriteReport(c.engine, c.Page().Title, sections, &buf); err != nil {
		c.logger.Printf("Ошибка формирования PDF: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportToPDF сохраняет PDF отчет в файл
func (c *ChartController) ExportToPDF(ctx context.Context, filePath string) error {
	data, err := c.GetPrintableData(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		c.logger.Printf("Ошибка сохранения PDF: %v", err)
		return err
	}
	c.logger.Printf("PDF сохранен: %s", filePath)
	return nil
}
