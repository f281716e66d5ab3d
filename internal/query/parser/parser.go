package parser

import (
	"fmt"
	"strconv"
	"strings"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

// ParseError represents a parsing error with location information.
type ParseError struct {
	Message  string
	Position int
	Token    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s (got %s)", e.Position, e.Message, e.Token.Literal)
}

// Parser parses SQL statements into the Statement variant.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
}

// NewParser creates a new Parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses one statement and returns it, or a structured syntax
// error pointing at the offending clause.
func Parse(input string) (Statement, error) {
	stmt, err := NewParser(input).ParseStatement()
	if err != nil {
		return nil, engerr.NewSyntaxError("cannot parse statement", err)
	}
	return stmt, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the peek token matches, otherwise returns an error.
func (p *Parser) expectPeek(t TokenType) error {
	if p.peekTokenIs(t) {
		p.nextToken()
		return nil
	}
	return p.errorf("expected %s", t.String())
}

// errorf builds a ParseError at the peek token.
func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: p.peekToken.Pos,
		Token:    p.peekToken,
	}
}

// ParseStatement parses a single SQL statement.
func (p *Parser) ParseStatement() (Statement, error) {
	var stmt Statement
	var err error

	switch p.curToken.Type {
	case TokenCreate:
		stmt, err = p.parseCreateTable()
	case TokenInsert:
		stmt, err = p.parseInsert()
	case TokenSelect:
		stmt, err = p.parseSelect()
	case TokenUpdate:
		stmt, err = p.parseUpdate()
	case TokenDelete:
		stmt, err = p.parseDelete()
	default:
		return nil, &ParseError{
			Message:  "expected CREATE, INSERT, SELECT, UPDATE, or DELETE",
			Position: p.curToken.Pos,
			Token:    p.curToken,
		}
	}
	if err != nil {
		return nil, err
	}

	// Optional trailing semicolon, then nothing else.
	if p.peekTokenIs(TokenSemicolon) {
		p.nextToken()
	}
	if !p.peekTokenIs(TokenEOF) {
		return nil, p.errorf("unexpected input after statement")
	}
	return stmt, nil
}

// parseCreateTable parses CREATE TABLE <name> (<col> <TYPE> [PRIMARY KEY|UNIQUE], ...).
func (p *Parser) parseCreateTable() (*CreateTableStatement, error) {
	if err := p.expectPeek(TokenTable); err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after CREATE TABLE")
	}
	stmt := &CreateTableStatement{Table: p.curToken.Literal}

	if err := p.expectPeek(TokenLParen); err != nil {
		return nil, err
	}

	for {
		if err := p.expectPeek(TokenIdent); err != nil {
			return nil, p.errorf("expected column name")
		}
		col := ColumnSpec{Name: p.curToken.Literal}

		if err := p.expectPeek(TokenIdent); err != nil {
			return nil, p.errorf("expected column type for %q", col.Name)
		}
		col.TypeName = p.curToken.Literal

		// Optional constraint flags, in either order.
		for {
			if p.peekTokenIs(TokenPrimary) {
				p.nextToken()
				if err := p.expectPeek(TokenKey); err != nil {
					return nil, p.errorf("expected KEY after PRIMARY")
				}
				col.PrimaryKey = true
				continue
			}
			if p.peekTokenIs(TokenUnique) {
				p.nextToken()
				col.Unique = true
				continue
			}
			break
		}
		stmt.Columns = append(stmt.Columns, col)

		if p.peekTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}

	if err := p.expectPeek(TokenRParen); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseInsert parses INSERT INTO <name> VALUES (<literal>, ...).
func (p *Parser) parseInsert() (*InsertStatement, error) {
	if err := p.expectPeek(TokenInto); err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after INSERT INTO")
	}
	stmt := &InsertStatement{Table: p.curToken.Literal}

	if err := p.expectPeek(TokenValues); err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenLParen); err != nil {
		return nil, err
	}

	for {
		p.nextToken()
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, v)

		if p.peekTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}

	if err := p.expectPeek(TokenRParen); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseSelect parses SELECT with an optional column list, an optional
// single JOIN, and an optional WHERE filter.
func (p *Parser) parseSelect() (*SelectStatement, error) {
	stmt := &SelectStatement{}

	if p.peekTokenIs(TokenStar) {
		p.nextToken()
	} else {
		for {
			ref, err := p.parseColumnRef()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, ref)
			if p.peekTokenIs(TokenComma) {
				p.nextToken()
				continue
			}
			break
		}
	}

	if err := p.expectPeek(TokenFrom); err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after FROM")
	}
	stmt.From = p.curToken.Literal

	if p.peekTokenIs(TokenInner) {
		p.nextToken()
		if !p.peekTokenIs(TokenJoin) {
			return nil, p.errorf("expected JOIN after INNER")
		}
	}
	if p.peekTokenIs(TokenJoin) {
		p.nextToken()
		join, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		stmt.Join = join
	}

	if p.peekTokenIs(TokenWhere) {
		p.nextToken()
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}

// parseJoin parses JOIN <t2> ON <t>.<col> = <t>.<col>. The current
// token is JOIN on entry.
func (p *Parser) parseJoin() (*JoinClause, error) {
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after JOIN")
	}
	join := &JoinClause{Table: p.curToken.Literal}

	if err := p.expectPeek(TokenOn); err != nil {
		return nil, err
	}

	left, err := p.parseQualifiedRef()
	if err != nil {
		return nil, err
	}
	join.Left = left

	if err := p.expectPeek(TokenEq); err != nil {
		return nil, p.errorf("expected = in ON condition")
	}

	right, err := p.parseQualifiedRef()
	if err != nil {
		return nil, err
	}
	join.Right = right
	return join, nil
}

// parseWhere parses the single equality condition. The current token
// is WHERE on entry.
func (p *Parser) parseWhere() (*WhereClause, error) {
	ref, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenEq); err != nil {
		return nil, p.errorf("expected = in WHERE clause")
	}
	p.nextToken()
	v, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &WhereClause{Column: ref, Value: v}, nil
}

// parseUpdate parses UPDATE <name> SET <col> = <literal> [, ...] WHERE ....
func (p *Parser) parseUpdate() (*UpdateStatement, error) {
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after UPDATE")
	}
	stmt := &UpdateStatement{Table: p.curToken.Literal}

	if err := p.expectPeek(TokenSet); err != nil {
		return nil, err
	}

	for {
		if err := p.expectPeek(TokenIdent); err != nil {
			return nil, p.errorf("expected column name in SET clause")
		}
		col := p.curToken.Literal
		if err := p.expectPeek(TokenEq); err != nil {
			return nil, p.errorf("expected = in SET clause")
		}
		p.nextToken()
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, Assignment{Column: col, Value: v})

		if p.peekTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}

	if err := p.expectPeek(TokenWhere); err != nil {
		return nil, p.errorf("UPDATE requires a WHERE clause")
	}
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where
	return stmt, nil
}

// parseDelete parses DELETE FROM <name> WHERE ....
func (p *Parser) parseDelete() (*DeleteStatement, error) {
	if err := p.expectPeek(TokenFrom); err != nil {
		return nil, err
	}
	if err := p.expectPeek(TokenIdent); err != nil {
		return nil, p.errorf("expected table name after DELETE FROM")
	}
	stmt := &DeleteStatement{Table: p.curToken.Literal}

	if err := p.expectPeek(TokenWhere); err != nil {
		return nil, p.errorf("DELETE requires a WHERE clause")
	}
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where
	return stmt, nil
}

// parseColumnRef parses an identifier with an optional table qualifier.
func (p *Parser) parseColumnRef() (ColumnRef, error) {
	if err := p.expectPeek(TokenIdent); err != nil {
		return ColumnRef{}, p.errorf("expected column name")
	}
	ref := ColumnRef{Column: p.curToken.Literal}
	if p.peekTokenIs(TokenDot) {
		p.nextToken()
		if err := p.expectPeek(TokenIdent); err != nil {
			return ColumnRef{}, p.errorf("expected column name after dot")
		}
		ref.Table = ref.Column
		ref.Column = p.curToken.Literal
	}
	return ref, nil
}

// parseQualifiedRef parses a mandatory <table>.<column> reference.
func (p *Parser) parseQualifiedRef() (ColumnRef, error) {
	ref, err := p.parseColumnRef()
	if err != nil {
		return ColumnRef{}, err
	}
	if ref.Table == "" {
		return ColumnRef{}, p.errorf("expected table-qualified column in ON condition")
	}
	return ref, nil
}

// parseLiteral parses the literal at the current token: a possibly
// negative number or a single-quoted string.
func (p *Parser) parseLiteral() (types.Value, error) {
	neg := false
	if p.curTokenIs(TokenMinus) {
		neg = true
		p.nextToken()
	}

	switch p.curToken.Type {
	case TokenNumber:
		literal := p.curToken.Literal
		if !strings.Contains(literal, ".") {
			v, err := strconv.ParseInt(literal, 10, 64)
			if err == nil {
				if neg {
					v = -v
				}
				return types.NewInt(v), nil
			}
		}
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return types.Value{}, &ParseError{
				Message:  "invalid number",
				Position: p.curToken.Pos,
				Token:    p.curToken,
			}
		}
		if neg {
			v = -v
		}
		return types.NewFloat(v), nil
	case TokenString:
		if neg {
			break
		}
		// Collapse escaped quotes
		return types.NewText(strings.ReplaceAll(p.curToken.Literal, "''", "'")), nil
	}
	return types.Value{}, &ParseError{
		Message:  "expected literal value",
		Position: p.curToken.Pos,
		Token:    p.curToken,
	}
}
