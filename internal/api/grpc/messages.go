package grpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Request asks for contributors of single repository.
type Request struct {
	Organization string
	Repository   string
	// Limit - maximum number of contributors, non positive means all.
	Limit int32
}

// Contributor of repository.
type Contributor struct {
	Login         string
	HTMLURL       string
	Contributions int32
}

// Reply contains contributors in order returned by github.
type Reply struct {
	Contributors []*Contributor
}

// Messages are sent on the wire as google.protobuf.Struct.

func (r *Request) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"organization": r.Organization,
		"repository":   r.Repository,
		"limit":        r.Limit,
	})
}

func requestFromStruct(s *structpb.Struct) (*Request, error) {
	fields := s.GetFields()

	r := &Request{}
	for name, v := range fields {
		switch name {
		case "organization":
			r.Organization = v.GetStringValue()
		case "repository":
			r.Repository = v.GetStringValue()
		case "limit":
			if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
				return nil, fmt.Errorf("limit must be a number, got %T", v.GetKind())
			}
			r.Limit = int32(v.GetNumberValue())
		default:
			return nil, fmt.Errorf("unknown request field %q", name)
		}
	}

	return r, nil
}

func (r *Reply) toStruct() (*structpb.Struct, error) {
	contributors := make([]interface{}, 0, len(r.Contributors))
	for _, c := range r.Contributors {
		contributors = append(contributors, map[string]interface{}{
			"login":         c.Login,
			"html_url":      c.HTMLURL,
			"contributions": c.Contributions,
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		"contributors": contributors,
	})
}

func replyFromStruct(s *structpb.Struct) (*Reply, error) {
	list := s.GetFields()["contributors"].GetListValue()
	if list == nil {
		return nil, fmt.Errorf("reply has no contributors list")
	}

	r := &Reply{
		Contributors: make([]*Contributor, 0, len(list.GetValues())),
	}
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("contributor %d is not an object", i)
		}
		r.Contributors = append(r.Contributors, &Contributor{
			Login:         fields["login"].GetStringValue(),
			HTMLURL:       fields["html_url"].GetStringValue(),
			Contributions: int32(fields["contributions"].GetNumberValue()),
		})
	}

	return r, nil
}
