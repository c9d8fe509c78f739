package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleSummary() model.Summary {
	return model.Summary{
		Level:     types.LevelPerson,
		CohortMin: 1,
		CohortMax: 9,
		Cohorts: []model.CohortCount{
			{Cohort: 1, Men: 3, Women: 1, MenPercent: 75, WomenPercent: 25},
			{Cohort: 2, Men: 0, Women: 0},
			{Cohort: 4, Men: 1, Women: 1, MenPercent: 50, WomenPercent: 50},
		},
	}
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestNew(t *testing.T) {
	Convey("Given chart options", t, func() {
		Convey("When defaults are used", func() {
			c, err := New()

			Convey("Then png and the reference colors are selected", func() {
				So(err, ShouldBeNil)
				So(c.Format(), ShouldEqual, FormatPNG)
				So(c.FileName(types.LevelPerson), ShouldEqual, "fig_24_person.png")
				So(c.FileName(types.LevelRole), ShouldEqual, "fig_24_role.png")
			})
		})

		Convey("When a palette color is malformed", func() {
			_, err := New(WithPalette("#1A85FF", "red"))

			Convey("Then ErrInvalidColor is returned", func() {
				So(errors.Is(err, ErrInvalidColor), ShouldBeTrue)
			})
		})

		Convey("When the format is unknown", func() {
			_, err := New(WithFormat("gif"))
			So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
		})

		Convey("When svg is requested", func() {
			c, err := New(WithFormat("SVG"))
			So(err, ShouldBeNil)
			So(c.FileName(types.LevelRole), ShouldEqual, "fig_24_role.svg")
		})

		Convey("When sizing the figure", func() {
			c, _ := New()
			w, h := c.Size(9)
			So(w, ShouldEqual, 1440)
			So(h, ShouldEqual, 600)

			w, _ = c.Size(1)
			So(w, ShouldEqual, minWidth)
		})
	})

	Convey("Given color strings", t, func() {
		So(ValidColor("#d9d9d8"), ShouldBeTrue)
		So(ValidColor("#abc"), ShouldBeTrue)
		So(ValidColor("d9d9d8"), ShouldBeFalse)
		So(ValidColor("#d9d9d"), ShouldBeFalse)
	})
}

func TestRenderPNG(t *testing.T) {
	Convey("Given a three-cohort summary", t, func() {
		c, err := New()
		So(err, ShouldBeNil)
		s := sampleSummary()

		Convey("When rendering to png", func() {
			var buf bytes.Buffer
			So(c.Render(context.Background(), s, &buf), ShouldBeNil)

			img, err := png.Decode(&buf)
			So(err, ShouldBeNil)

			Convey("Then the figure has the expected size", func() {
				w, h := c.Size(len(s.Cohorts))
				So(img.Bounds().Dx(), ShouldEqual, w)
				So(img.Bounds().Dy(), ShouldEqual, h)
			})

			Convey("Then segments are stacked men below women", func() {
				font, _ := chart.GetDefaultFont()
				r, _ := chart.PNG(c.Size(len(s.Cohorts)))
				r.SetDPI(c.dpi)
				l := newLayout(&painter{r: r, font: font, text: c.text}, s, img.Bounds().Dx(), img.Bounds().Dy())

				men := l.bar(1, 0, 75)
				cx := (men.Left + men.Right) / 2
				r8, g8, b8 := rgbAt(img, cx, men.Bottom-4)
				So([]uint8{r8, g8, b8}, ShouldResemble, []uint8{0x1A, 0x85, 0xFF})

				women := l.bar(1, 75, 25)
				r8, g8, b8 = rgbAt(img, cx, women.Top+4)
				So([]uint8{r8, g8, b8}, ShouldResemble, []uint8{0xD4, 0x11, 0x59})

				half := l.bar(3, 0, 50)
				So(half.Top, ShouldBeLessThan, half.Bottom)
				So(half.Top, ShouldEqual, l.bar(3, 50, 50).Bottom)
			})

			Convey("Then the empty cohort draws no bar", func() {
				font, _ := chart.GetDefaultFont()
				r, _ := chart.PNG(c.Size(len(s.Cohorts)))
				r.SetDPI(c.dpi)
				l := newLayout(&painter{r: r, font: font, text: c.text}, s, img.Bounds().Dx(), img.Bounds().Dy())

				x := l.bar(2, 0, 0).Left + 2
				r8, g8, b8 := rgbAt(img, x, l.y(50))
				So([]uint8{r8, g8, b8}, ShouldResemble, []uint8{0xFF, 0xFF, 0xFF})
			})
		})

		Convey("When the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := c.Render(ctx, s, &bytes.Buffer{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRenderSVG(t *testing.T) {
	Convey("Given an svg chart", t, func() {
		c, err := New(WithFormat(FormatSVG), WithPalette("#000000", "#ffffff"))
		So(err, ShouldBeNil)

		Convey("When rendering", func() {
			var buf bytes.Buffer
			So(c.Render(context.Background(), sampleSummary(), &buf), ShouldBeNil)
			out := buf.String()

			Convey("Then the document carries the title, ticks and legend", func() {
				So(out, ShouldStartWith, "<svg")
				So(out, ShouldContainSubstring, "Gender of other External Team Members across Cohorts 1-9,")
				So(out, ShouldContainSubstring, "Person-Level (n=6)")
				So(out, ShouldContainSubstring, "100%")
				So(out, ShouldContainSubstring, ">women<")
			})
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given an output directory", t, func() {
		dir := t.TempDir()
		c, _ := New()
		ctx := context.Background()

		Convey("When writing a summary", func() {
			path, n, err := c.Write(ctx, sampleSummary(), dir)

			Convey("Then fig_24_<level>.png holds the encoded image", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(dir, "fig_24_person.png"))
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(len(data), ShouldEqual, n)
				_, err = png.Decode(bytes.NewReader(data))
				So(err, ShouldBeNil)
			})
		})

		Convey("When the summary has no cohorts", func() {
			s := sampleSummary()
			s.Cohorts = nil
			_, _, err := c.Write(ctx, s, dir)

			Convey("Then nothing is written", func() {
				So(errors.Is(err, ErrEmptySummary), ShouldBeTrue)
				entries, _ := os.ReadDir(dir)
				So(len(entries), ShouldEqual, 0)
			})
		})

		Convey("When the directory does not exist", func() {
			_, _, err := c.Write(ctx, sampleSummary(), filepath.Join(dir, "missing"))
			So(errors.Is(err, ErrOutputDir), ShouldBeTrue)
		})

		Convey("When the path is a file", func() {
			f := filepath.Join(dir, "file")
			So(os.WriteFile(f, nil, 0o600), ShouldBeNil)
			_, _, err := c.Write(ctx, sampleSummary(), f)
			So(errors.Is(err, ErrOutputDir), ShouldBeTrue)
			So(strings.Contains(err.Error(), "not a directory"), ShouldBeTrue)
		})
	})
}
