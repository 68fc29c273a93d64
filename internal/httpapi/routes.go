package httpapi

import (
	"context"
	"net/http"

	"paramd/internal/params"
	"paramd/pkg/types"
)

// canned listing served by the query-constraint demo routes
var demoItems = []types.ItemRef{{ItemID: "Foo"}, {ItemID: "Bar"}}

// Routes declares every demo endpoint. The order is registration order.
func Routes(svc Service) []Route {
	h := handlers{svc: svc}
	modelNames := make([]string, len(types.ModelNames))
	for i, m := range types.ModelNames {
		modelNames[i] = string(m)
	}
	return []Route{
		{
			Method: http.MethodGet, Pattern: "/", Name: "root", Summary: "Greeting",
			Spec:   params.MustCompile(),
			Handle: h.root,
		},
		{
			Method: http.MethodGet, Pattern: "/items/{item_id}", Name: "read_item", Summary: "Echo an item id and optional query",
			Spec: params.MustCompile(
				params.Path("item_id", params.TypeString),
				params.Query("q", params.TypeString),
			),
			Handle: h.readItem,
		},
		{
			Method: http.MethodGet, Pattern: "/items/", Name: "list_items", Summary: "Slice the item catalog",
			Spec: params.MustCompile(
				params.Query("skip", params.TypeInt, params.Default(0)),
				params.Query("limit", params.TypeInt, params.Default(10)),
			),
			Handle: h.listItems,
		},
		{
			Method: http.MethodGet, Pattern: "/users/me", Name: "read_user_me", Summary: "The current user",
			Spec:   params.MustCompile(),
			Handle: h.readUserMe,
		},
		{
			Method: http.MethodGet, Pattern: "/users/{user_id}", Name: "read_user", Summary: "Echo a user id",
			Spec:   params.MustCompile(params.Path("user_id", params.TypeString)),
			Handle: h.readUser,
		},
		{
			Method: http.MethodGet, Pattern: "/models/{model_name}", Name: "get_model", Summary: "Canned message per model",
			Spec: params.MustCompile(
				params.Path("model_name", params.TypeEnum, params.Members(parseModelName, modelNames...)),
			),
			Handle: h.getModel,
		},
		{
			Method: http.MethodPost, Pattern: "/items2/", Name: "create_item", Summary: "Echo a validated item",
			Spec:   params.MustCompile(params.Body("item", newItemIn)),
			Handle: h.createItem,
		},
		{
			Method: http.MethodPut, Pattern: "/items/{item_id}", Name: "update_item", Summary: "Merge an item id into an item",
			Spec: params.MustCompile(
				params.Path("item_id", params.TypeInt),
				params.Body("item", newItemIn),
			),
			Handle: h.updateItem,
		},
		{
			Method: http.MethodGet, Pattern: "/items-query/", Name: "read_items_fixed_query", Summary: "Query with length and pattern constraints",
			Spec: params.MustCompile(
				params.Query("q", params.TypeString, params.MinLength(3), params.MaxLength(50), params.Pattern("^fixedquery$")),
			),
			Handle: h.readItemsOptionalQuery,
		},
		{
			Method: http.MethodGet, Pattern: "/mandatory/", Name: "mandatory_param", Summary: "Required non-empty query",
			Spec: params.MustCompile(
				params.Query("param", params.TypeString, params.Required(), params.MinLength(1)),
			),
			Handle: h.mandatory,
		},
		{
			Method: http.MethodGet, Pattern: "/items-list/", Name: "read_items_list", Summary: "Untyped query list",
			Spec: params.MustCompile(
				params.Query("q", params.TypeString, params.Sequence(), params.Default([]string{})),
			),
			Handle: h.queryList,
		},
		{
			Method: http.MethodGet, Pattern: "/items3/", Name: "read_items3", Summary: "Typed query list with default",
			Spec: params.MustCompile(
				params.Query("q", params.TypeString, params.Sequence(), params.Default([]string{"foo", "bar"})),
			),
			Handle: h.queryList,
		},
		{
			Method: http.MethodGet, Pattern: "/items4/", Name: "read_items4", Summary: "Documented query with min length",
			Spec: params.MustCompile(
				params.Query("q", params.TypeString, params.MinLength(3),
					params.Title("Query string"),
					params.Description("Query string for the items to search in the database that have a good match")),
			),
			Handle: h.readItemsOptionalQuery,
		},
		{
			Method: http.MethodGet, Pattern: "/items5/", Name: "read_items5", Summary: "Query read through an alias",
			Spec:   params.MustCompile(params.Query("q", params.TypeString, params.Alias("item-query"))),
			Handle: h.good,
		},
		{
			Method: http.MethodGet, Pattern: "/items6/{item_id}", Name: "read_items6", Summary: "Integer path id with required query",
			Spec: params.MustCompile(
				params.Query("q", params.TypeString, params.Required()),
				params.Path("item_id", params.TypeInt, params.Title("The ID of the item to get")),
			),
			Handle: h.readItems6,
		},
	}
}

func parseModelName(s string) (any, error) { return types.ParseModelName(s) }

func newItemIn() any { return new(types.ItemIn) }

type handlers struct {
	svc Service
}

func (h handlers) root(context.Context, params.Values) (any, error) {
	return types.MessageResponse{Message: "Hello World"}, nil
}

func (h handlers) readItem(_ context.Context, in params.Values) (any, error) {
	q, _ := in.OptString("q")
	return types.ItemQueryResponse{ItemID: in.String("item_id"), Q: q}, nil
}

func (h handlers) listItems(_ context.Context, in params.Values) (any, error) {
	return h.svc.Items(in.Int("skip"), in.Int("limit")), nil
}

func (h handlers) readUserMe(context.Context, params.Values) (any, error) {
	return types.UserResponse{UserID: "the current user"}, nil
}

func (h handlers) readUser(_ context.Context, in params.Values) (any, error) {
	return types.UserResponse{UserID: in.String("user_id")}, nil
}

func (h handlers) getModel(_ context.Context, in params.Values) (any, error) {
	return h.svc.Model(params.As[types.ModelName](in, "model_name"))
}

func (h handlers) createItem(_ context.Context, in params.Values) (any, error) {
	return params.As[*types.ItemIn](in, "item").Item(), nil
}

func (h handlers) updateItem(_ context.Context, in params.Values) (any, error) {
	item := params.As[*types.ItemIn](in, "item").Item()
	return types.UpdatedItemResponse{ItemID: in.Int("item_id"), Item: item}, nil
}

func (h handlers) readItemsOptionalQuery(_ context.Context, in params.Values) (any, error) {
	q, _ := in.OptString("q")
	return types.ItemsResponse{Items: demoItems, Q: q}, nil
}

func (h handlers) mandatory(_ context.Context, in params.Values) (any, error) {
	if zlog != nil {
		zlog.Debug().Str("param", in.String("param")).Msg("mandatory")
	}
	return "hell yeah", nil
}

func (h handlers) queryList(_ context.Context, in params.Values) (any, error) {
	return types.QueryListResponse{Q: in.Strings("q")}, nil
}

func (h handlers) good(context.Context, params.Values) (any, error) {
	return "good", nil
}

func (h handlers) readItems6(_ context.Context, in params.Values) (any, error) {
	return types.ItemNumberResponse{ItemID: in.Int("item_id"), Q: in.String("q")}, nil
}
