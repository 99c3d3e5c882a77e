package dsl_test

import (
	"strings"
	"testing"

	"github.com/spectraldani/genkouyoushi/dsl"
)

const sampleSheet = `
sheet Practice v1 {
  meta {
    title: "${student} 練習"
    keywords: [
      "kanji"
      "practice"
    ]
    author: data.teacher
  }

  resources {
    color Ink = #4A7EBB
  }

  page A4 portrait padding 10mm {
    cell 10mm margin 0 2mm padding 1mm stroke 0.3mm
    style grid
    guides cross diagonal inner-box // comment after a command
    title middle length 8
    title-text "${student}"
    color Ink brighten 0.6
  }
}
`

func TestParseSheet(t *testing.T) {
	sheet, err := dsl.ParseString(sampleSheet)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if sheet.Name != "Practice" {
		t.Fatalf("expected sheet name Practice, got %s", sheet.Name)
	}
	if sheet.Version != "v1" {
		t.Fatalf("expected version v1, got %s", sheet.Version)
	}
	if len(sheet.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sheet.Sections))
	}
	kinds := []string{sheet.Sections[0].Kind(), sheet.Sections[1].Kind(), sheet.Sections[2].Kind()}
	if strings.Join(kinds, ",") != "meta,resources,page" {
		t.Fatalf("unexpected section kinds: %v", kinds)
	}

	meta := sheet.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "${student} 練習" {
		t.Fatalf("unexpected title %q", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected keywords array with 2 values, got %+v", keywords)
	}
	author := meta.Block.Statements[2].Assignment
	if author == nil || author.Value.Expr == nil {
		t.Fatalf("author should capture expression, got %+v", meta.Block.Statements[2])
	}
	if got := tokensToString(author.Value.Expr.Parts); got != "data . teacher" {
		t.Fatalf("unexpected expression tokens: %s", got)
	}

	color := sheet.Sections[1].Resources.Block.Statements[0].Command
	if color == nil || color.Name != "color" || len(color.Args) != 3 {
		t.Fatalf("unexpected color resource: %+v", color)
	}
	if color.Args[2].Type != "Color" || color.Args[2].Value != "#4A7EBB" {
		t.Fatalf("expected colour literal, got %+v", color.Args[2])
	}

	page := sheet.FirstPage()
	if page == nil {
		t.Fatalf("page section missing")
	}
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}
	if got := tokensToString(page.Spec.Params); got != "portrait padding 10mm" {
		t.Fatalf("unexpected page params: %s", got)
	}

	var names []string
	for _, st := range page.Block.Statements {
		if st.Command == nil {
			t.Fatalf("expected only commands in page block, got %+v", st)
		}
		names = append(names, st.Command.Name)
	}
	if got := strings.Join(names, ","); got != "cell,style,guides,title,title-text,color" {
		t.Fatalf("unexpected page commands: %s", got)
	}

	cell := page.Block.Statements[0].Command
	if got := tokensToString(cell.Args); got != "10mm margin 0 2mm padding 1mm stroke 0.3mm" {
		t.Fatalf("unexpected cell args: %s", got)
	}
	guides := page.Block.Statements[2].Command
	if got := tokensToString(guides.Args); got != "cross diagonal inner-box" {
		t.Fatalf("comment should be elided, got args: %s", got)
	}
	titleText := page.Block.Statements[4].Command
	if len(titleText.Args) != 1 || !titleText.Args[0].IsString() || titleText.Args[0].Value != "${student}" {
		t.Fatalf("unexpected title-text args: %+v", titleText.Args)
	}
}

func TestParseRejectsMissingHeader(t *testing.T) {
	if _, err := dsl.ParseString(`page A4 { style grid }`); err == nil {
		t.Fatalf("expected error for sheet without header")
	}
}

func TestFirstPageNil(t *testing.T) {
	sheet, err := dsl.ParseString("sheet Empty v1 {\n meta {\n title: \"x\"\n }\n}\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sheet.FirstPage() != nil {
		t.Fatalf("expected no page section")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
