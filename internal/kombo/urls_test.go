package kombo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationURL(t *testing.T) {
	assert.Equal(t,
		"https://www.kombo.com.br/curriculo/cadastro-curriculo-gratis?cid=abc",
		ApplicationURL("abc", ""))
	assert.Equal(t,
		"https://www.kombo.com.br/curriculo/cadastro-curriculo-gratis?cid=abc&vaga=V1",
		ApplicationURL("abc", "V1"))
}

func TestJobBoardURL(t *testing.T) {
	assert.Equal(t, "https://www.kombo.com.br/curriculo/buscar-vagas-emprego?cid=abc", JobBoardURL("abc"))
}

func TestHomeURL(t *testing.T) {
	assert.Equal(t, "https://www.kombo.com.br/curriculo?cid=a%2Fb", HomeURL("a/b"))
}
