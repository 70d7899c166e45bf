package fieldschema

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karolswdev/jiramcp/internal/jira"
)

type stubLister struct {
	fields []jira.Field
	err    error
}

func (s stubLister) ListFields(context.Context) ([]jira.Field, error) {
	return s.fields, s.err
}

func TestParseShape(t *testing.T) {
	testCases := []struct {
		schemaType string
		items      string
		expected   string
	}{
		{"string", "", "string"},
		{"number", "", "number"},
		{"datetime", "", "datetime"},
		{"date", "", "date"},
		{"user", "", "user"},
		{"array", "user", "array<user>"},
		{"array", "string", "array<string>"},
		{"array", "option", "array<identifier>"},
		{"array", "component", "array<identifier>"},
		{"priority", "", "unknown(priority)"},
		{"", "", "unknown"},
	}
	for _, tc := range testCases {
		t.Run(tc.schemaType+"/"+tc.items, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseShape(tc.schemaType, tc.items).String())
		})
	}
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation(" ADD ")
	require.NoError(t, err)
	assert.Equal(t, OpAdd, op)

	_, err = ParseOperation("replace")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestLegalOperations(t *testing.T) {
	all := []Operation{OpSet, OpAdd, OpRemove}
	testCases := []struct {
		name  string
		shape Shape
		legal []Operation
	}{
		{"string scalar", Scalar(ScalarString), []Operation{OpSet}},
		{"number scalar", Scalar(ScalarNumber), []Operation{OpSet}},
		{"boolean scalar", Scalar(ScalarBoolean), []Operation{OpSet}},
		{"datetime scalar", Scalar(ScalarDateTime), []Operation{OpSet}},
		{"single user", UserRef(), []Operation{OpSet}},
		{"array of users", ArrayOf(UserRef()), all},
		{"array of scalars", ArrayOf(Scalar(ScalarString)), all},
		{"unknown", Unknown("priority"), nil},
		{"array of unknown", ArrayOf(Unknown("thing")), nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.legal, LegalOperations(tc.shape))

			contract := Synthesize([]FieldDescriptor{{ID: "f", Name: "F", Shape: tc.shape}})
			fc, ok := contract.Contract("f")
			require.True(t, ok)
			assert.Equal(t, tc.legal, fc.Operations())

			for _, op := range all {
				legal := IsLegal(tc.shape, op)
				assert.Equal(t, legal, ValueContract(tc.shape, op) != nil)
				err := fc.Check(Entry{Operation: op, Value: "x"})
				if !legal {
					assert.ErrorIs(t, err, ErrOperationNotAllowed)
				} else {
					assert.NotErrorIs(t, err, ErrOperationNotAllowed)
				}
			}
		})
	}
}

func TestValueContract(t *testing.T) {
	testCases := []struct {
		name  string
		shape Shape
		op    Operation
		value any
		valid bool
	}{
		{"string accepts string", Scalar(ScalarString), OpSet, "High", true},
		{"string rejects number", Scalar(ScalarString), OpSet, 3.0, false},
		{"number accepts float", Scalar(ScalarNumber), OpSet, 2.5, true},
		{"number rejects string", Scalar(ScalarNumber), OpSet, "2", false},
		{"boolean accepts bool", Scalar(ScalarBoolean), OpSet, true, true},
		{"datetime accepts RFC3339", Scalar(ScalarDateTime), OpSet, "2025-01-02T10:00:00Z", true},
		{"datetime accepts jira layout", Scalar(ScalarDateTime), OpSet, "2025-01-02T10:00:00.000+0000", true},
		{"datetime rejects date", Scalar(ScalarDateTime), OpSet, "yesterday", false},
		{"date accepts day", Scalar(ScalarDate), OpSet, "2025-03-31", true},
		{"date rejects bad day", Scalar(ScalarDate), OpSet, "2025-02-30", false},
		{"user accepts ref", UserRef(), OpSet, AccountRef{AccountID: "abc"}, true},
		{"user accepts clear", UserRef(), OpSet, ClearUser, true},
		{"user rejects raw id", UserRef(), OpSet, "abc", false},
		{"user rejects empty ref", UserRef(), OpSet, AccountRef{}, false},
		{"user array add ref", ArrayOf(UserRef()), OpAdd, AccountRef{AccountID: "abc"}, true},
		{"user array rejects clear", ArrayOf(UserRef()), OpRemove, ClearUser, false},
		{"identifier accepts string", ArrayOf(Scalar(ScalarIdentifier)), OpAdd, "10001", true},
		{"identifier accepts number", ArrayOf(Scalar(ScalarIdentifier)), OpRemove, 10001.0, true},
		{"identifier rejects object", ArrayOf(Scalar(ScalarIdentifier)), OpSet, map[string]any{"id": "1"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			validate := ValueContract(tc.shape, tc.op)
			require.NotNil(t, validate)
			err := validate(tc.value)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValueShape)
			}
		})
	}
}

func TestFetchCatalog(t *testing.T) {
	t.Run("Maps schemas to shapes", func(t *testing.T) {
		lister := stubLister{fields: []jira.Field{
			{ID: "customfield_1", Name: "Severity", Custom: true, Schema: &jira.FieldSchema{Type: "string"}},
			{ID: "labels", Name: "Labels", Schema: &jira.FieldSchema{Type: "array", Items: "string"}},
			{ID: "thumbnail", Name: "Images"},
		}}
		catalog, err := FetchCatalog(context.Background(), lister)
		require.NoError(t, err)
		require.Len(t, catalog, 3)
		assert.Equal(t, Scalar(ScalarString), catalog[0].Shape)
		assert.True(t, catalog[0].Custom)
		assert.Equal(t, "array<string>", catalog[1].Shape.String())
		assert.Equal(t, ShapeUnknown, catalog[2].Shape.Kind)
	})

	t.Run("Wraps fetch failure", func(t *testing.T) {
		_, err := FetchCatalog(context.Background(), stubLister{err: assert.AnError})
		assert.ErrorIs(t, err, ErrCatalogFetch)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFindByNames(t *testing.T) {
	catalog := []FieldDescriptor{
		{ID: "summary", Name: "Summary", Shape: Scalar(ScalarString)},
		{ID: "customfield_1", Name: "Team", Shape: Scalar(ScalarString)},
		{ID: "customfield_2", Name: "team", Shape: Scalar(ScalarIdentifier)},
	}

	matched, err := FindByNames(catalog, []string{"TEAM"})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "customfield_1", matched[0].ID)
	assert.Equal(t, "customfield_2", matched[1].ID)

	_, err = FindByNames(catalog, []string{"Story Points"})
	assert.ErrorIs(t, err, ErrNoMatchingFields)

	_, err = FindByNames(nil, []string{"Summary"})
	assert.ErrorIs(t, err, ErrNoMatchingFields)
}

func TestBuild(t *testing.T) {
	severity := FieldDescriptor{ID: "customfield_10010", Name: "Severity", Shape: Scalar(ScalarString)}
	watchers := FieldDescriptor{ID: "customfield_10020", Name: "Reviewers", Shape: ArrayOf(UserRef())}
	owner := FieldDescriptor{ID: "customfield_10030", Name: "Owner", Shape: UserRef()}
	images := FieldDescriptor{ID: "customfield_10040", Name: "Images", Shape: Unknown("attachment")}

	t.Run("Scalar set round trip", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{severity}, []UpdateItem{{FieldName: "severity", Operation: OpSet, Value: "High"}})
		require.NoError(t, err)
		assert.False(t, result.Partial())

		body, err := json.Marshal(result.Payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"update":{"customfield_10010":[{"set":"High"}]}}`, string(body))
	})

	t.Run("Array operations keep caller order", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{watchers}, []UpdateItem{
			{FieldName: "Reviewers", Operation: OpAdd, Value: "acc-1"},
			{FieldName: "reviewers", Operation: OpRemove, Value: "acc-2"},
		})
		require.NoError(t, err)

		body, err := json.Marshal(result.Payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"update":{"customfield_10020":[{"add":{"accountId":"acc-1"}},{"remove":{"accountId":"acc-2"}}]}}`, string(body))
	})

	t.Run("Single user clears on empty value", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{owner}, []UpdateItem{{FieldName: "Owner", Operation: OpSet, Value: ""}})
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Operation: OpSet, Value: ClearUser}}, result.Payload.Update["customfield_10030"])

		result, err = Build([]FieldDescriptor{owner}, []UpdateItem{{FieldName: "Owner", Operation: OpSet, Value: "acc-9"}})
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Operation: OpSet, Value: AccountRef{AccountID: "acc-9"}}}, result.Payload.Update["customfield_10030"])
	})

	t.Run("Unresolved item is skipped", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{severity}, []UpdateItem{
			{FieldName: "Severity", Operation: OpSet, Value: "Low"},
			{FieldName: "Flavour", Operation: OpSet, Value: "Mint"},
		})
		require.NoError(t, err)
		assert.True(t, result.Partial())
		assert.Equal(t, []string{"Flavour"}, result.Skipped)
		assert.Len(t, result.Payload.Update, 1)
	})

	t.Run("Illegal operation fails closed", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{severity}, []UpdateItem{{FieldName: "Severity", Operation: OpAdd, Value: "High"}})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrPayloadInvalid)
		assert.ErrorIs(t, err, ErrOperationNotAllowed)
	})

	t.Run("Unknown shape fails closed", func(t *testing.T) {
		result, err := Build([]FieldDescriptor{images, severity}, []UpdateItem{
			{FieldName: "Severity", Operation: OpSet, Value: "High"},
			{FieldName: "Images", Operation: OpSet, Value: "a.png"},
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrOperationNotAllowed)
	})

	t.Run("Wrong value type fails closed", func(t *testing.T) {
		_, err := Build([]FieldDescriptor{severity, watchers}, []UpdateItem{
			{FieldName: "Severity", Operation: OpSet, Value: 7.0},
			{FieldName: "Reviewers", Operation: OpAdd, Value: 12.0},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueShape)
		assert.Contains(t, err.Error(), `"Severity" set`)
		assert.Contains(t, err.Error(), `"Reviewers" add`)
	})
}

func TestSchemaValidate_StaleField(t *testing.T) {
	schema := Synthesize([]FieldDescriptor{{ID: "summary", Name: "Summary", Shape: Scalar(ScalarString)}})
	err := schema.Validate(UpdatePayload{Update: map[string][]Entry{
		"customfield_404": {{Operation: OpSet, Value: "x"}},
	}})
	assert.ErrorIs(t, err, ErrStaleField)
}
