package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	commerceService = "commerce.v1.CommerceService"
	profileService  = "profile.v1.ProfileService"

	connectProtocolHeader  = "Connect-Protocol-Version"
	connectProtocolVersion = "1"
	requestIDHeader        = "X-Request-Id"
)

// connectCaller posts Connect-protocol JSON unary calls to one service
// base URL, carrying the bearer token and a fresh request id per call.
type connectCaller struct {
	base   string
	token  string
	client *http.Client
}

func newConnectCaller(baseURL, token string, client *http.Client) connectCaller {
	if client == nil {
		client = http.DefaultClient
	}
	return connectCaller{
		base:   strings.TrimRight(baseURL, "/"),
		token:  token,
		client: client,
	}
}

// wireStatus is the error envelope every Connect JSON body may carry.
// A non-empty code marks the response as a failure regardless of the
// HTTP status.
type wireStatus struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w wireStatus) err(httpOK bool) *Error {
	if httpOK && w.Code == "" {
		return nil
	}
	code := w.Code
	if code == "" {
		code = "unknown"
	}
	msg := w.Message
	if msg == "" {
		msg = "Request failed"
	}
	return &Error{Code: codeFromConnect(code), Message: msg}
}

func (c connectCaller) call(ctx context.Context, service, method string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return wrapTransport("encode request", err)
	}

	url := c.base + "/" + service + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return wrapTransport("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(connectProtocolHeader, connectProtocolVersion)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return wrapTransport("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapTransport("read response", err)
	}

	httpOK := resp.StatusCode >= 200 && resp.StatusCode < 300

	var status wireStatus
	if err := json.Unmarshal(body, &status); err != nil {
		if !httpOK {
			return &Error{Code: codeFromConnect("unknown"), Message: "Request failed"}
		}
		return wrapTransport("decode response", err)
	}
	if werr := status.err(httpOK); werr != nil {
		return werr
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return wrapTransport("decode response", err)
	}
	return nil
}

// ConnectCommerceClient talks to commerce.v1.CommerceService over the
// Connect JSON protocol.
type ConnectCommerceClient struct {
	caller connectCaller
}

var _ CommerceClient = (*ConnectCommerceClient)(nil)

// NewConnectCommerceClient builds a client for the given base URL.
// token may be empty; client nil means http.DefaultClient.
func NewConnectCommerceClient(baseURL, token string, client *http.Client) *ConnectCommerceClient {
	return &ConnectCommerceClient{caller: newConnectCaller(baseURL, token, client)}
}

func (c *ConnectCommerceClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	var resp struct {
		Product *Product `json:"product"`
	}
	err := c.caller.call(ctx, commerceService, "GetProduct", map[string]string{"id": id}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (c *ConnectCommerceClient) ListProducts(ctx context.Context, shopID string) ([]*Product, error) {
	var resp struct {
		Products []*Product `json:"products"`
	}
	err := c.caller.call(ctx, commerceService, "ListProducts", map[string]string{"shopId": shopID}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *ConnectCommerceClient) ListProductVariants(ctx context.Context, productID string) ([]*ProductVariant, error) {
	var resp struct {
		ProductVariants []*ProductVariant `json:"productVariants"`
	}
	err := c.caller.call(ctx, commerceService, "ListProductVariants", map[string]string{"productId": productID}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.ProductVariants, nil
}

func (c *ConnectCommerceClient) CreateCart(ctx context.Context, shopID, profileID string) (*Cart, error) {
	var resp struct {
		Cart *Cart `json:"cart"`
	}
	req := map[string]string{"shopId": shopID, "profileId": profileID}
	if err := c.caller.call(ctx, commerceService, "CreateCart", req, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

func (c *ConnectCommerceClient) AddCartLine(ctx context.Context, cartID, variantID string, quantity int64) (*Cart, error) {
	var resp struct {
		Cart *Cart `json:"cart"`
	}
	req := struct {
		CartID           string `json:"cartId"`
		ProductVariantID string `json:"productVariantId"`
		Quantity         Int64  `json:"quantity"`
	}{cartID, variantID, Int64(quantity)}
	if err := c.caller.call(ctx, commerceService, "AddCartLine", req, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

func (c *ConnectCommerceClient) RemoveCartLine(ctx context.Context, cartID, cartLineID string) (*Cart, error) {
	var resp struct {
		Cart *Cart `json:"cart"`
	}
	req := map[string]string{"cartId": cartID, "cartLineId": cartLineID}
	if err := c.caller.call(ctx, commerceService, "RemoveCartLine", req, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

func (c *ConnectCommerceClient) CreateOrder(ctx context.Context, shopID, profileID string, lines []OrderLineInput) (*Order, error) {
	var resp struct {
		Order *Order `json:"order"`
	}
	req := struct {
		ShopID    string           `json:"shopId"`
		ProfileID string           `json:"profileId"`
		Lines     []OrderLineInput `json:"lines"`
	}{shopID, profileID, lines}
	if err := c.caller.call(ctx, commerceService, "CreateOrder", req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (c *ConnectCommerceClient) CreateOrderFromCart(ctx context.Context, cartID, profileID, addressID string) (*Order, error) {
	var resp struct {
		Order *Order `json:"order"`
	}
	req := map[string]string{"cartId": cartID, "profileId": profileID}
	if addressID != "" {
		req["addressId"] = addressID
	}
	if err := c.caller.call(ctx, commerceService, "CreateOrderFromCart", req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// ConnectProfileClient talks to profile.v1.ProfileService over the
// Connect JSON protocol.
type ConnectProfileClient struct {
	caller connectCaller
}

var _ ProfileClient = (*ConnectProfileClient)(nil)

// NewConnectProfileClient builds a client for the given base URL.
func NewConnectProfileClient(baseURL, token string, client *http.Client) *ConnectProfileClient {
	return &ConnectProfileClient{caller: newConnectCaller(baseURL, token, client)}
}

func (c *ConnectProfileClient) GetByID(ctx context.Context, id string) (*Profile, error) {
	var raw json.RawMessage
	err := c.caller.call(ctx, profileService, "GetById", map[string]string{"id": id}, &raw)
	if err != nil {
		return nil, err
	}
	// Some deployments wrap the profile, others return it at the top
	// level (the widget has always accepted both).
	var resp struct {
		Profile *Profile `json:"profile"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, wrapTransport("decode response", err)
	}
	if resp.Profile != nil {
		return resp.Profile, nil
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, wrapTransport("decode response", err)
	}
	return &p, nil
}

func (c *ConnectProfileClient) AddAddress(ctx context.Context, profileID string, address Address) (*Address, error) {
	req := struct {
		ProfileID string  `json:"profileId"`
		Address   Address `json:"address"`
	}{profileID, address}
	var raw json.RawMessage
	if err := c.caller.call(ctx, profileService, "AddAddress", req, &raw); err != nil {
		return nil, err
	}
	var resp struct {
		Address *Address `json:"address"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, wrapTransport("decode response", err)
	}
	if resp.Address != nil {
		return resp.Address, nil
	}
	var a Address
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, wrapTransport("decode response", err)
	}
	return &a, nil
}
