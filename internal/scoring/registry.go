package scoring

import "storeaudit/internal/model"

type sectionBucket struct {
	title    string
	score    float64
	maxScore float64
	weight   float64
}

// registry holds one bucket per titled section, in template order
type registry struct {
	order   []*sectionBucket
	byTitle map[string]*sectionBucket
}

func newRegistry(t *model.Template) *registry {
	reg := &registry{
		order:   make([]*sectionBucket, 0, len(t.Sections)),
		byTitle: make(map[string]*sectionBucket, len(t.Sections)),
	}
	for i := range t.Sections {
		s := &t.Sections[i]
		if s.Title == "" {
			continue
		}
		w := weightOrDefault(s.Weight)
		// Titles are expected to be unique. A repeated title keeps its first
		// position and takes the later weight.
		if bk, ok := reg.byTitle[s.Title]; ok {
			bk.weight = w
			continue
		}
		bk := &sectionBucket{title: s.Title, weight: w}
		reg.byTitle[s.Title] = bk
		reg.order = append(reg.order, bk)
	}
	return reg
}

func (r *registry) bucket(title string) *sectionBucket {
	if title == "" {
		return nil
	}
	return r.byTitle[title]
}
