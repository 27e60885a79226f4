package content

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/ast"
	"github.com/vektah/gqlparser/parser"
)

// ErrInvalidQuery is returned when a generated query does not parse, or
// parses to something other than the single aliased field it was built for.
var ErrInvalidQuery = errors.New("content: invalid query")

// pageSize is the fixed number of records requested per content kind.
const pageSize = 100

var speakersQuery = fmt.Sprintf(`
{
  allSpeakers(first: %d) {
    name
    bio
    title
    slug
    twitter
    github
    company
    talk {
      title
      description
    }
    image {
      url(imgixParams: {fm: jpg, fit: crop, w: 300, h: 400})
    }
    imageSquare: image {
      url(imgixParams: {fm: jpg, fit: crop, w: 192, h: 192})
    }
  }
}
`, pageSize)

var sponsorsQuery = fmt.Sprintf(`
{
  allCompanies(first: %d, orderBy: tierRank_ASC) {
    name
    description
    slug
    website
    callToAction
    callToActionLink
    discord
    youtubeSlug
    tier
    links {
      url
      text
    }
    cardImage {
      url(imgixParams: {fm: jpg, fit: crop})
    }
    logo {
      url(imgixParams: {fm: jpg, fit: crop, w: 100, h: 100})
    }
  }
}
`, pageSize)

// contentHubTypeName is the Content Hub root field listing all entities of
// the given type.
func contentHubTypeName(typeID string) string {
	return "allM_Content_" + typeID
}

// stagesQuery builds the Content Hub query for stages of type typeID.
func stagesQuery(typeID string) (string, error) {
	prefix, err := FieldPrefix(typeID)
	if err != nil {
		return "", err
	}
	q := fmt.Sprintf(`
{
  allStages: %[1]s(first: %[2]d, orderBy: CONTENT_NAME_ASC) {
    results {
      name: %[3]s_name
      slug: %[3]s_slug
      stream: %[3]s_stream
      discord: %[3]s_discord
    }
  }
}
`, contentHubTypeName(typeID), pageSize, prefix)
	return q, checkQuery(q, "allStages", contentHubTypeName(typeID))
}

// jobsQuery builds the Content Hub query for job postings of type typeID.
func jobsQuery(typeID string) (string, error) {
	prefix, err := FieldPrefix(typeID)
	if err != nil {
		return "", err
	}
	q := fmt.Sprintf(`
{
  allJobs: %[1]s(first: %[2]d, orderBy: CONTENT_NAME_ASC) {
    results {
      id
      title: %[3]s_Title
      description: %[3]s_description
      companyName: %[3]s_companyName
      discord: %[3]s_discord
      link: %[3]s_link
    }
  }
}
`, contentHubTypeName(typeID), pageSize, prefix)
	return q, checkQuery(q, "allJobs", contentHubTypeName(typeID))
}

// checkQuery parses q and verifies it is a single operation selecting
// exactly one root field named name. A non-empty alias must match too.
func checkQuery(q, alias, name string) error {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Name: alias, Input: q})
	if gqlErr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, gqlErr.Error())
	}
	if len(doc.Operations) != 1 || len(doc.Fragments) != 0 {
		return fmt.Errorf("%w: want a single operation, got %d", ErrInvalidQuery, len(doc.Operations))
	}
	sel := doc.Operations[0].SelectionSet
	if len(sel) != 1 {
		return fmt.Errorf("%w: want one root field, got %d", ErrInvalidQuery, len(sel))
	}
	field, ok := sel[0].(*ast.Field)
	if !ok {
		return fmt.Errorf("%w: root selection is %T, want a field", ErrInvalidQuery, sel[0])
	}
	if field.Name != name {
		return fmt.Errorf("%w: root field %q, want %q", ErrInvalidQuery, field.Name, name)
	}
	if alias != "" && field.Alias != alias {
		return fmt.Errorf("%w: root alias %q, want %q", ErrInvalidQuery, field.Alias, alias)
	}
	return nil
}
