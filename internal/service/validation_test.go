package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page   Page
		offset int
	}{
		{Page{From: 0, Size: 10}, 0},
		{Page{From: 9, Size: 10}, 0},
		{Page{From: 10, Size: 10}, 10},
		{Page{From: 25, Size: 10}, 20},
		{Page{From: 3, Size: 1}, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.offset, tc.page.Offset(), "%+v", tc.page)
		assert.Equal(t, tc.page.Size, tc.page.Limit())
	}

	err := Page{From: -1, Size: 0}.Validate()
	requireKind(t, err, KindValidation)
	assert.Len(t, err.(*Error).Fields, 2)
}

func TestUserInputValidation(t *testing.T) {
	require.NoError(t, UserInput{Name: ptr("Ann"), Email: ptr("ann@example.com")}.ValidateCreate())
	require.NoError(t, UserInput{}.ValidatePatch())

	err := UserInput{Name: ptr(" "), Email: ptr("ann@")}.ValidateCreate()
	requireKind(t, err, KindValidation)
	assert.Equal(t, map[string]string{"name": msgBlank, "email": msgEmail}, err.(*Error).Fields)
	assert.Equal(t, "email: "+msgEmail+"; name: "+msgBlank, err.(*Error).Message)

	err = UserInput{}.ValidateCreate()
	assert.Equal(t, map[string]string{"name": msgBlank, "email": msgBlank}, err.(*Error).Fields)

	err = UserInput{Email: ptr("")}.ValidatePatch()
	assert.Equal(t, map[string]string{"email": msgBlank}, err.(*Error).Fields)
}

func TestBookingInputValidation(t *testing.T) {
	start, end := window(testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.NoError(t, BookingInput{ItemID: ptr(uint64(1)), Start: start, End: end}.Validate(testNow))

	nowStart, nowEnd := window(testNow, testNow.Add(time.Second))
	require.NoError(t, BookingInput{ItemID: ptr(uint64(1)), Start: nowStart, End: nowEnd}.Validate(testNow))

	err := BookingInput{}.Validate(testNow)
	assert.Equal(t, map[string]string{"itemId": msgNull, "start": msgNull, "end": msgNull}, err.(*Error).Fields)

	pastStart, pastEnd := window(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	err = BookingInput{ItemID: ptr(uint64(1)), Start: pastStart, End: pastEnd}.Validate(testNow)
	assert.Equal(t, map[string]string{"start": msgPast, "end": msgPast}, err.(*Error).Fields)

	err = BookingInput{ItemID: ptr(uint64(1)), Start: end, End: start}.Validate(testNow)
	assert.Equal(t, map[string]string{"end": msgEndBefore}, err.(*Error).Fields)
}

func TestItemInputValidation(t *testing.T) {
	require.NoError(t, ItemInput{Name: ptr("a"), Description: ptr("b"), Available: ptr(false)}.ValidateCreate())
	require.NoError(t, ItemInput{Available: ptr(true)}.ValidatePatch())

	err := ItemInput{Name: ptr(""), Description: ptr(" ")}.ValidatePatch()
	assert.Equal(t, map[string]string{"name": msgBlank, "description": msgBlank}, err.(*Error).Fields)
}

func TestTextLengthLimits(t *testing.T) {
	long := func(n int) *string { s := strings.Repeat("x", n); return &s }
	wide := strings.Repeat("é", maxItemName)

	cases := []struct {
		name  string
		err   error
		field string
		max   int
	}{
		{"user name on create", UserInput{Name: long(maxUserName + 1), Email: ptr("ann@example.com")}.ValidateCreate(), "name", maxUserName},
		{"user name on patch", UserInput{Name: long(maxUserName + 1)}.ValidatePatch(), "name", maxUserName},
		{"item name", ItemInput{Name: long(maxItemName + 1), Description: ptr("d"), Available: ptr(true)}.ValidateCreate(), "name", maxItemName},
		{"item description on patch", ItemInput{Description: long(maxDescription + 1)}.ValidatePatch(), "description", maxDescription},
		{"request description", RequestInput{Description: *long(maxDescription + 1)}.Validate(), "description", maxDescription},
		{"comment text", CommentInput{Text: *long(maxCommentText + 1)}.Validate(), "text", maxCommentText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireKind(t, tc.err, KindValidation)
			assert.Equal(t, map[string]string{tc.field: msgTooLong(tc.max)}, tc.err.(*Error).Fields)
		})
	}

	require.NoError(t, UserInput{Name: long(maxUserName), Email: ptr("ann@example.com")}.ValidateCreate())
	require.NoError(t, ItemInput{Name: &wide, Description: long(maxDescription), Available: ptr(true)}.ValidateCreate())
	require.NoError(t, CommentInput{Text: *long(maxCommentText)}.Validate())
	require.NoError(t, RequestInput{Description: *long(maxDescription)}.Validate())
}
