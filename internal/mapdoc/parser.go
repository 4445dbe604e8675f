package mapdoc

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"map220-scene/internal/lexer"
	"map220-scene/internal/mathutil"
)

// ParseError is a positional structural or numeric parse failure. The
// document returned alongside it holds every entity closed before the
// failure; callers must treat that pairing as best effort, never as
// fully loaded.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mapdoc: line %d: %s", e.Line, e.Msg)
}

// Parser consumes a token stream and builds a Document tree. Parsing is
// strictly sequential; a Parser must not be shared across goroutines.
type Parser struct {
	lex *lexer.Lexer

	// Warnf receives non-fatal semantic warnings (missing classname,
	// malformed origin). Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// NewParser returns a parser over the given map source text.
func NewParser(src string) *Parser {
	return &Parser{lex: lexer.New(src), Warnf: log.Printf}
}

// Parse builds a document from src. On error the returned document still
// holds the entities parsed before the failure.
func Parse(src string) (*Document, error) {
	return NewParser(src).Parse()
}

// Parse builds the document tree.
func (p *Parser) Parse() (*Document, error) {
	doc := &Document{Title: "unknown", Description: "unknown"}
	for !p.lex.IsEnd() {
		tok := p.lex.Next()
		if tok == "" {
			break
		}
		if tok != "{" {
			return doc, p.errf("expected '{' to open an entity, got %q", tok)
		}
		ent, err := p.parseEntity()
		if err != nil {
			return doc, err
		}
		doc.Entities = append(doc.Entities, *ent)
	}
	return doc, nil
}

func (p *Parser) errf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.lex.Line(), Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseEntity() (*Entity, error) {
	ent := &Entity{Pairs: make(map[string]string)}
	for {
		switch tok := p.lex.Peek(); tok {
		case "":
			return nil, p.errf("unexpected end of input inside entity")
		case "}":
			p.lex.Next()
			p.finishEntity(ent)
			return ent, nil
		case "{":
			p.lex.Next()
			brush, err := p.parseBrush()
			if err != nil {
				return nil, err
			}
			ent.Brushes = append(ent.Brushes, *brush)
		default:
			if err := p.parseKeyValue(ent); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) parseKeyValue(ent *Entity) error {
	// Keys and values may contain characters that normally delimit
	// tokens (paths, bracketed values), so both are read opaque.
	prev := p.lex.SetIgnoreDelimiters(true)
	defer p.lex.SetIgnoreDelimiters(prev)

	key := p.lex.Next()
	if p.lex.IsEnd() {
		return p.errf("missing value for key %q", key)
	}
	value := p.lex.Next()

	if _, dup := ent.Pairs[key]; dup {
		return p.errf("duplicate key %q", key)
	}
	ent.Pairs[key] = value
	return nil
}

// finishEntity runs once the closing brace is consumed: classname
// fallback, origin canonicalization, bounds from owned brushes.
func (p *Parser) finishEntity(ent *Entity) {
	cls, ok := ent.Pairs["classname"]
	if !ok {
		p.Warnf("mapdoc: %s: entity missing classname", p.lex.LineInfo())
		cls = UnknownClassname
	}
	ent.Classname = cls

	if origin, ok := ent.Pairs["origin"]; ok {
		v, err := ParseVec3(origin)
		if err != nil {
			p.Warnf("mapdoc: %s: bad origin %q: %v", p.lex.LineInfo(), origin, err)
		} else {
			ent.Centre = v
			// Canonical numeric form, so re-serializing the pairs later
			// reflects the resolved value, not the source text.
			ent.Pairs["origin"] = FormatVec3(v)
		}
	}

	if len(ent.Brushes) > 0 {
		box := ent.Brushes[0].Bounds
		for _, b := range ent.Brushes[1:] {
			box = box.Union(b.Bounds)
		}
		ent.Bounds = box
	}
}

func (p *Parser) parseBrush() (*Brush, error) {
	brush := &Brush{}
	for {
		switch tok := p.lex.Peek(); tok {
		case "":
			return nil, p.errf("unexpected end of input inside brush")
		case "}":
			p.lex.Next()
			if len(brush.Faces) == 0 {
				return nil, p.errf("brush has no faces")
			}
			box := mathutil.BoxAt(brush.Faces[0].PlanePoints[0])
			for _, f := range brush.Faces {
				for _, pt := range f.PlanePoints {
					box = box.Expand(pt)
				}
			}
			brush.Bounds = box
			brush.Centre = box.Centre()
			return brush, nil
		case "(":
			face, err := p.parseFace()
			if err != nil {
				return nil, err
			}
			brush.Faces = append(brush.Faces, *face)
		default:
			return nil, p.errf("expected a face or '}' in brush, got %q", tok)
		}
	}
}

func (p *Parser) parseFace() (*Face, error) {
	face := &Face{}

	for i := 0; i < 3; i++ {
		if err := p.expect("("); err != nil {
			return nil, err
		}
		pt, err := p.parsePoint()
		if err != nil {
			return nil, err
		}
		face.PlanePoints[i] = pt
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}

	prev := p.lex.SetIgnoreDelimiters(true)
	face.MaterialName = p.lex.Next()
	p.lex.SetIgnoreDelimiters(prev)
	if face.MaterialName == "" {
		return nil, p.errf("unexpected end of input reading face material")
	}

	var err error
	if face.UAxis, err = p.parseProjectionAxis(); err != nil {
		return nil, err
	}
	if face.VAxis, err = p.parseProjectionAxis(); err != nil {
		return nil, err
	}

	if face.Rotation, err = p.parseFloat(); err != nil {
		return nil, err
	}
	if face.Scale[0], err = p.parseFloat(); err != nil {
		return nil, err
	}
	if face.Scale[1], err = p.parseFloat(); err != nil {
		return nil, err
	}

	// Newer dialects append extra per-face fields (surface flags and the
	// like) after scale. Skip tokens until the next face or brush end.
	for {
		tok := p.lex.Peek()
		if tok == "(" || tok == "}" || tok == "" {
			break
		}
		p.lex.Next()
	}

	pl, ok := mathutil.PlaneFromPoints(face.PlanePoints[0], face.PlanePoints[1], face.PlanePoints[2])
	if !ok {
		return nil, p.errf("degenerate face plane (collinear points)")
	}
	face.Plane = pl
	return face, nil
}

func (p *Parser) parseProjectionAxis() (mathutil.Vec4, error) {
	var axis mathutil.Vec4
	if err := p.expect("["); err != nil {
		return axis, err
	}
	for i := 0; i < 4; i++ {
		v, err := p.parseFloat()
		if err != nil {
			return axis, err
		}
		axis[i] = v
	}
	if err := p.expect("]"); err != nil {
		return axis, err
	}
	// Axis directions are stored metric so the projector's squared unit
	// compensation reproduces the editor's alignment. Offsets stay in
	// texels.
	for i := 0; i < 3; i++ {
		axis[i] /= mathutil.UnitsPerMetre
	}
	return axis, nil
}

func (p *Parser) parsePoint() (mathutil.Vec3, error) {
	var v mathutil.Vec3
	for i := 0; i < 3; i++ {
		f, err := p.parseFloat()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *Parser) parseFloat() (float64, error) {
	tok := p.lex.Next()
	if tok == "" {
		return 0, p.errf("unexpected end of input, expected a number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, p.errf("expected a number, got %q", tok)
	}
	return v, nil
}

func (p *Parser) expect(tok string) error {
	if !p.lex.Expect(tok, true) {
		got := p.lex.Peek()
		if got == "" {
			return p.errf("unexpected end of input, expected %q", tok)
		}
		return p.errf("expected %q, got %q", tok, got)
	}
	return nil
}

// ParseVec3 parses a whitespace-separated "x y z" string.
func ParseVec3(s string) (mathutil.Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var v mathutil.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = x
	}
	return v, nil
}

// FormatVec3 renders v in the canonical "x y z" numeric form.
func FormatVec3(v mathutil.Vec3) string {
	return fmt.Sprintf("%g %g %g", v[0], v[1], v[2])
}
