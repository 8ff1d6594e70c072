package compare

import (
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransforms_Chain(t *testing.T) {
	base := referenceRequest()

	out, err := ApplyTransforms(base, []RequestTransform{
		SwitchSystem{System: domain.ConstantInstallment},
		SetStrategy{Strategy: domain.ReduceInstallment},
		ScaleExtras{Factor: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ConstantInstallment, out.System)
	assert.Equal(t, domain.ReduceInstallment, out.ExtraPayments[0].Strategy)
	assert.True(t, out.ExtraPayments[0].Amount.Equal(decimal.NewFromInt(152000)))

	assert.Equal(t, domain.ConstantAmortization, base.System, "Base must not change")
	assert.True(t, base.ExtraPayments[0].Amount.Equal(decimal.NewFromInt(76000)))
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(referenceRequest(), []RequestTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")

	_, err = ApplyTransforms(referenceRequest(), []RequestTransform{ScaleExtras{Factor: decimal.Zero}})
	assert.ErrorContains(t, err, "scale_extras")

	_, err = ApplyTransforms(referenceRequest(), []RequestTransform{SwitchSystem{System: "GERMAN"}})
	assert.Error(t, err)
}

func TestDropExtras(t *testing.T) {
	out, err := DropExtras{}.Apply(referenceRequest())
	require.NoError(t, err)
	assert.False(t, out.HasExtraPayments())
}

func TestTemplateRegistry(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range DefaultTemplates {
		_, ok := registry.Get(name)
		assert.True(t, ok, "default template %s must be registered", name)
	}

	tmpl, ok := registry.Get(" SAC-Reduce ")
	require.True(t, ok)
	assert.Len(t, tmpl.Transforms, 2)

	names := registry.List()
	assert.Contains(t, names, "no-extras")
	assert.IsIncreasing(t, names)
}
