package app

import (
	tokenService "github.com/allisson/cardvault/internal/token/service"
	tokenUseCase "github.com/allisson/cardvault/internal/token/usecase"
)

// TokenSigner returns the HMAC signer built from the disclosure secret.
func (c *Container) TokenSigner() (tokenService.Signer, error) {
	var err error
	c.tokenSignerInit.Do(func() {
		c.tokenSigner, err = tokenService.NewHMACSigner(c.config.DisclosureSecret)
		if err != nil {
			c.initErrors["tokenSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenSigner"]; exists {
		return nil, storedErr
	}
	return c.tokenSigner, nil
}

// TokenCodec returns the token payload codec.
func (c *Container) TokenCodec() tokenService.Codec {
	c.tokenCodecInit.Do(func() {
		c.tokenCodec = tokenService.NewURLJSONCodec()
	})
	return c.tokenCodec
}

// TokenAuthority returns the token authority, instrumented with business
// metrics when metrics are enabled.
func (c *Container) TokenAuthority() (tokenUseCase.Authority, error) {
	var err error
	c.tokenAuthorityInit.Do(func() {
		c.tokenAuthority, err = c.initTokenAuthority()
		if err != nil {
			c.initErrors["tokenAuthority"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenAuthority"]; exists {
		return nil, storedErr
	}
	return c.tokenAuthority, nil
}

// initTokenAuthority creates the token authority.
func (c *Container) initTokenAuthority() (tokenUseCase.Authority, error) {
	signer, err := c.TokenSigner()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	authority := tokenUseCase.NewAuthority(signer, c.TokenCodec())
	return tokenUseCase.NewAuthorityWithMetrics(authority, businessMetrics), nil
}
