package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"newsfeed/internal/domain/model"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Locale
		wantErr bool
	}{
		{name: "code", input: "hi", want: model.LocaleHindi},
		{name: "upper case code", input: "UR", want: model.LocaleUrdu},
		{name: "regional tag", input: "ar-EG", want: model.LocaleArabic},
		{name: "accept language", input: "en-US,en;q=0.9", want: model.LocaleEnglish},
		{name: "unsupported", input: "fr", wantErr: true},
		{name: "empty", input: "  ", wantErr: true},
		{name: "garbage", input: "%%%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseLocale(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrUnknownLocale)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLocaleDirection(t *testing.T) {
	require.Equal(t, model.DirectionLTR, model.LocaleEnglish.Direction())
	require.Equal(t, model.DirectionLTR, model.LocaleHindi.Direction())
	require.Equal(t, model.DirectionRTL, model.LocaleArabic.Direction())
	require.Equal(t, model.DirectionRTL, model.LocaleUrdu.Direction())
}

func TestLocaleLanguageName(t *testing.T) {
	require.Equal(t, "Urdu", model.LocaleUrdu.LanguageName())
	require.Empty(t, model.Locale("fr").LanguageName())
	require.Equal(t, "اردو", model.LocaleUrdu.NativeName())
	require.Equal(t, "हिन्दी", model.LocaleHindi.NativeName())
	require.Empty(t, model.Locale("fr").NativeName())
	require.False(t, model.Locale("fr").Valid())
}

func TestParseCategory(t *testing.T) {
	got, err := model.ParseCategory(" technology ")
	require.NoError(t, err)
	require.Equal(t, model.CategoryTechnology, got)

	_, err = model.ParseCategory("Weather")
	require.ErrorIs(t, err, model.ErrUnknownCategory)

	require.True(t, model.CategorySports.Valid())
	require.False(t, model.Category("sports").Valid())
}
