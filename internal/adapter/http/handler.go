package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/serialgen/internal/app"
	"github.com/neomorfeo/serialgen/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

// --- Generate Serial ---

type GenerateSerialInput struct {
	Length int `query:"length" default:"20" minimum:"0" maximum:"4096" doc:"Number of characters"`
}

// SerialResponse is the API representation of a generated identifier.
type SerialResponse struct {
	Serial string `json:"serial" doc:"Generated identifier"`
	Length int    `json:"length" doc:"Number of characters"`
}

type GenerateSerialOutput struct {
	Body SerialResponse
}

// --- Apply Background ---

type ApplyBackgroundInput struct {
	Body struct {
		Color string `json:"color" pattern:"^#[0-9a-fA-F]{6}$" example:"#336699" doc:"Color in #rrggbb form"`
	}
}

// BackgroundResponse carries the gradient for the display region.
type BackgroundResponse struct {
	Color    string `json:"color" doc:"Normalized color (lowercase #rrggbb)"`
	Gradient string `json:"gradient" doc:"CSS background value"`
}

type ApplyBackgroundOutput struct {
	Body BackgroundResponse
}

// --- Footer ---

// FooterResponse carries the copyright year.
type FooterResponse struct {
	Year int    `json:"year" doc:"Current calendar year"`
	Text string `json:"text" doc:"Year as display text"`
}

type GetFooterOutput struct {
	Body FooterResponse
}

// --- Record Copy ---

type RecordCopyInput struct {
	Body struct {
		OK     bool   `json:"ok" doc:"Whether the clipboard write succeeded"`
		Detail string `json:"detail,omitempty" maxLength:"500" doc:"Failure message reported by the browser"`
	}
}

// --- Activity ---

// ActivityResponse is the API representation of a recorded widget event.
type ActivityResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Event     string `json:"event" doc:"Widget event"`
	Length    int    `json:"length" doc:"Generated length (generate events only)"`
	Detail    string `json:"detail,omitempty" doc:"Failure detail (copy_failed only)"`
	CreatedAt string `json:"created_at" doc:"Timestamp (ISO 8601)"`
}

func toActivityResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Event:     string(a.Event),
		Length:    a.Length,
		Detail:    a.Detail,
		CreatedAt: a.CreatedAt.UTC().Format(timeLayout),
	}
}

type ListActivityInput struct {
	Event  string `query:"event" required:"false" enum:"generate,copy_succeeded,copy_failed,color_changed,page_loaded" doc:"Filter by event"`
	Limit  int    `query:"limit" required:"false" default:"50" minimum:"1" maximum:"500" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" minimum:"0" doc:"Pagination offset"`
}

type ListActivityOutput struct {
	Body []ActivityResponse
}

// EventCountResponse is the number of activities for one event.
type EventCountResponse struct {
	Event string `json:"event" doc:"Widget event"`
	Count int    `json:"count" doc:"Recorded activities"`
}

type ActivitySummaryOutput struct {
	Body []EventCountResponse
}

// Register adds all widget API routes to the Huma API.
func Register(api huma.API, serials *app.SerialService, activity *app.ActivityService) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-serial",
		Method:      http.MethodPost,
		Path:        "/api/v1/serials",
		Summary:     "Generate a serial",
		Tags:        []string{"Serials"},
	}, func(ctx context.Context, input *GenerateSerialInput) (*GenerateSerialOutput, error) {
		id, err := serials.Generate(ctx, input.Length)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GenerateSerialOutput{Body: SerialResponse{Serial: id.String(), Length: id.Len()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "apply-background",
		Method:      http.MethodPost,
		Path:        "/api/v1/backgrounds",
		Summary:     "Build the display region background for a color",
		Tags:        []string{"Widget"},
	}, func(ctx context.Context, input *ApplyBackgroundInput) (*ApplyBackgroundOutput, error) {
		g, err := serials.Background(ctx, input.Body.Color)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ApplyBackgroundOutput{Body: BackgroundResponse{Color: g.Color, Gradient: g.CSS()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-footer",
		Method:      http.MethodGet,
		Path:        "/api/v1/footer",
		Summary:     "Get the footer year",
		Tags:        []string{"Widget"},
	}, func(ctx context.Context, _ *struct{}) (*GetFooterOutput, error) {
		year := serials.PageLoaded(ctx)
		return &GetFooterOutput{Body: FooterResponse{Year: year, Text: strconv.Itoa(year)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "record-copy",
		Method:        http.MethodPost,
		Path:          "/api/v1/copies",
		Summary:       "Record the outcome of a clipboard write",
		Tags:          []string{"Widget"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RecordCopyInput) (*struct{}, error) {
		var copyErr error
		if !input.Body.OK {
			detail := input.Body.Detail
			if detail == "" {
				detail = "unknown clipboard error"
			}
			copyErr = errors.New(detail)
		}
		serials.RecordCopy(ctx, copyErr)
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-activity",
		Method:      http.MethodGet,
		Path:        "/api/v1/activity",
		Summary:     "List recorded widget activity",
		Tags:        []string{"Activity"},
	}, func(ctx context.Context, input *ListActivityInput) (*ListActivityOutput, error) {
		filter := domain.ListFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Event != "" {
			e := domain.Event(input.Event)
			filter.Event = &e
		}

		activities, err := activity.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ActivityResponse, len(activities))
		for i, a := range activities {
			resp[i] = toActivityResponse(a)
		}
		return &ListActivityOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "activity-summary",
		Method:      http.MethodGet,
		Path:        "/api/v1/activity/summary",
		Summary:     "Count recorded activity per event",
		Tags:        []string{"Activity"},
	}, func(ctx context.Context, _ *struct{}) (*ActivitySummaryOutput, error) {
		counts, err := activity.Summary(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]EventCountResponse, len(counts))
		for i, c := range counts {
			resp[i] = EventCountResponse{Event: string(c.Event), Count: c.Count}
		}
		return &ActivitySummaryOutput{Body: resp}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrInvalidArgument) {
		return huma.Error400BadRequest(err.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
